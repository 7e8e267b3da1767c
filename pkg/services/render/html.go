package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	htmlTemplate = "report.html.tmpl"
	contactEmail = "erin@clocksynk.com"
)

var errNilDocument = errors.New("nil report document")

// Renderer turns a report document into a message body.
type Renderer interface {
	RenderWeekly(report *domain.WeeklyReport) (string, error)
	RenderMonthly(report *domain.MonthlyReport) (string, error)
}

type view struct {
	Title    string
	Period   string
	Kind     domain.ReportKind
	Contact  string
	Weekly   *domain.WeeklyReport
	Monthly  *domain.MonthlyReport
	Activity []domain.ActivityEvent
}

func weeklyView(r *domain.WeeklyReport) view {
	return view{
		Title:    r.Title,
		Period:   r.Period,
		Kind:     domain.ReportKindWeekly,
		Contact:  contactEmail,
		Weekly:   r,
		Activity: r.Highlights,
	}
}

func monthlyView(r *domain.MonthlyReport) view {
	return view{
		Title:    r.Title,
		Period:   r.Period,
		Kind:     domain.ReportKindMonthly,
		Contact:  contactEmail,
		Monthly:  r,
		Activity: r.RecentMilestones,
	}
}

type htmlRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (Renderer, error) {
	tmpl, err := template.New(htmlTemplate).Funcs(funcs()).ParseFS(templateFS, "templates/"+htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &htmlRenderer{tmpl: tmpl}, nil
}

func (r *htmlRenderer) RenderWeekly(report *domain.WeeklyReport) (string, error) {
	if report == nil {
		return "", &RenderError{Stage: "execute", Err: errNilDocument}
	}
	return r.execute(weeklyView(report))
}

func (r *htmlRenderer) RenderMonthly(report *domain.MonthlyReport) (string, error) {
	if report == nil {
		return "", &RenderError{Stage: "execute", Err: errNilDocument}
	}
	return r.execute(monthlyView(report))
}

func (r *htmlRenderer) execute(v view) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", &RenderError{Stage: "execute", Err: err}
	}
	return buf.String(), nil
}
