package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/handlers"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/metrics"
	"github.com/clocksynk/dashboard/pkg/services/render"
	"github.com/clocksynk/dashboard/pkg/services/report"
)

const (
	maxDocumentBytes = 1 << 20
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var errUnknownKind = errors.New("unknown report kind")

type Handler struct {
	reports report.Service
	html    render.Renderer
	text    render.Renderer
	xlsx    render.XLSXExporter
}

func NewHandler(reports report.Service, html, text render.Renderer, xlsx render.XLSXExporter) *Handler {
	return &Handler{
		reports: reports,
		html:    html,
		text:    text,
		xlsx:    xlsx,
	}
}

// Routes mounts the report endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/{kind}", h.GetReport)
	r.Get("/reports/{kind}/html", h.GetReportHTML)
	r.Get("/reports/{kind}/text", h.GetReportText)
	r.Get("/reports/{kind}/xlsx", h.GetReportXLSX)
	r.Post("/reports/{kind}/send", h.SendReport)
	r.Post("/reports/{kind}/render", h.RenderDocument)
}

// document is a generated report of either kind.
type document struct {
	weekly  *domain.WeeklyReport
	monthly *domain.MonthlyReport
}

func (h *Handler) generate(ctx context.Context, kind domain.ReportKind) (document, error) {
	if kind == domain.ReportKindWeekly {
		weekly, err := h.reports.GenerateWeekly(ctx)
		return document{weekly: weekly}, err
	}
	monthly, err := h.reports.GenerateMonthly(ctx)
	return document{monthly: monthly}, err
}

func (h *Handler) renderWith(renderer render.Renderer, doc document) (string, error) {
	if doc.weekly != nil {
		return renderer.RenderWeekly(doc.weekly)
	}
	return renderer.RenderMonthly(doc.monthly)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(w, r)
	if !ok {
		return
	}
	doc, err := h.generate(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if doc.weekly != nil {
		handlers.JSON(w, r, http.StatusOK, adapters.MapWeeklyReportDomainToApi(*doc.weekly))
		return
	}
	handlers.JSON(w, r, http.StatusOK, adapters.MapMonthlyReportDomainToApi(*doc.monthly))
}

func (h *Handler) GetReportHTML(w http.ResponseWriter, r *http.Request) {
	h.writeRendered(w, r, h.html, "text/html; charset=utf-8")
}

func (h *Handler) GetReportText(w http.ResponseWriter, r *http.Request) {
	h.writeRendered(w, r, h.text, "text/plain; charset=utf-8")
}

func (h *Handler) writeRendered(w http.ResponseWriter, r *http.Request, renderer render.Renderer, contentType string) {
	kind, ok := reportKind(w, r)
	if !ok {
		return
	}
	doc, err := h.generate(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := h.renderWith(renderer, doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeBody(w, r, contentType, []byte(body))
}

func (h *Handler) GetReportXLSX(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(w, r)
	if !ok {
		return
	}
	doc, err := h.generate(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if doc.weekly != nil {
		err = h.xlsx.ExportWeekly(&buf, doc.weekly)
	} else {
		err = h.xlsx.ExportMonthly(&buf, doc.monthly)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="clocksynk-%s-report.xlsx"`, kind))
	writeBody(w, r, xlsxContentType, buf.Bytes())
}

func (h *Handler) SendReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(w, r)
	if !ok {
		return
	}

	var (
		res *domain.SendResult
		err error
	)
	if kind == domain.ReportKindWeekly {
		res, err = h.reports.SendWeekly(r.Context())
	} else {
		res, err = h.reports.SendMonthly(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	handlers.JSON(w, r, http.StatusOK, adapters.MapSendResultDomainToApi(*res))
}

// RenderDocument renders a caller-supplied report document as HTML.
func (h *Handler) RenderDocument(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(w, r)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		handlers.Error(w, r, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return
	}

	var doc document
	if kind == domain.ReportKindWeekly {
		doc.weekly, err = render.DecodeWeekly(raw)
	} else {
		doc.monthly, err = render.DecodeMonthly(raw)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := h.renderWith(h.html, doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeBody(w, r, "text/html; charset=utf-8", []byte(body))
}

func reportKind(w http.ResponseWriter, r *http.Request) (domain.ReportKind, bool) {
	raw := chi.URLParam(r, "kind")
	kind, ok := domain.ParseReportKind(raw)
	if !ok {
		handlers.Error(w, r, http.StatusNotFound, fmt.Errorf("%w: %q", errUnknownKind, raw))
	}
	return kind, ok
}

// StatusFor maps a report pipeline error to an HTTP status.
func StatusFor(err error) int {
	var renderErr *render.RenderError
	switch {
	case errors.Is(err, metrics.ErrDataUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &renderErr):
		if renderErr.Stage == "validate" || renderErr.Stage == "decode" {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	case errors.Is(err, errUnknownKind):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	handlers.Error(w, r, StatusFor(err), err)
}

func writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
