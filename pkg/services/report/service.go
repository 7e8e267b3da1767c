package report

import (
	"context"
	"fmt"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/metrics"
	"github.com/clocksynk/dashboard/pkg/services/recipients"
	"github.com/clocksynk/dashboard/pkg/services/render"
	"github.com/rs/zerolog"
)

// Deliverer hands a rendered message off and reports how far delivery got
// within its wait bound.
type Deliverer interface {
	Send(ctx context.Context, msg domain.ReportMessage) domain.DeliveryStatus
}

type Service interface {
	GenerateWeekly(ctx context.Context) (*domain.WeeklyReport, error)
	GenerateMonthly(ctx context.Context) (*domain.MonthlyReport, error)
	SendWeekly(ctx context.Context) (*domain.SendResult, error)
	SendMonthly(ctx context.Context) (*domain.SendResult, error)
}

type Dependencies struct {
	Loader     metrics.Loader
	Builder    Builder
	HTML       render.Renderer
	Text       render.Renderer
	Deliverer  Deliverer
	Recipients recipients.Registry
	Clock      func() time.Time
}

type service struct {
	deps Dependencies
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Loader == nil {
		return nil, fmt.Errorf("snapshot loader is required")
	}
	if deps.HTML == nil {
		return nil, fmt.Errorf("html renderer is required")
	}
	if deps.Deliverer == nil {
		return nil, fmt.Errorf("deliverer is required")
	}
	if deps.Builder == nil {
		deps.Builder = NewBuilder()
	}
	if deps.Recipients == nil {
		deps.Recipients = recipients.Defaults()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &service{deps: deps}, nil
}

func (s *service) GenerateWeekly(ctx context.Context) (*domain.WeeklyReport, error) {
	now := s.deps.Clock()
	snapshot, err := s.deps.Loader.Load(ctx, WeeklyWindow(now))
	if err != nil {
		return nil, fmt.Errorf("generate weekly report: %w", err)
	}
	report := s.deps.Builder.BuildWeekly(*snapshot, now)
	return &report, nil
}

func (s *service) GenerateMonthly(ctx context.Context) (*domain.MonthlyReport, error) {
	now := s.deps.Clock()
	snapshot, err := s.deps.Loader.Load(ctx, MonthlyWindow(now))
	if err != nil {
		return nil, fmt.Errorf("generate monthly report: %w", err)
	}
	report := s.deps.Builder.BuildMonthly(*snapshot, now)
	return &report, nil
}

func (s *service) SendWeekly(ctx context.Context) (*domain.SendResult, error) {
	report, err := s.GenerateWeekly(ctx)
	if err != nil {
		return nil, err
	}

	html, err := s.deps.HTML.RenderWeekly(report)
	if err != nil {
		return nil, fmt.Errorf("render weekly report: %w", err)
	}
	text := s.plainText(ctx, func(r render.Renderer) (string, error) { return r.RenderWeekly(report) })

	return s.send(ctx, domain.ReportKindWeekly, report.Title, report.Period, html, text), nil
}

func (s *service) SendMonthly(ctx context.Context) (*domain.SendResult, error) {
	report, err := s.GenerateMonthly(ctx)
	if err != nil {
		return nil, err
	}

	html, err := s.deps.HTML.RenderMonthly(report)
	if err != nil {
		return nil, fmt.Errorf("render monthly report: %w", err)
	}
	text := s.plainText(ctx, func(r render.Renderer) (string, error) { return r.RenderMonthly(report) })

	return s.send(ctx, domain.ReportKindMonthly, report.Title, report.Period, html, text), nil
}

// plainText renders the optional text body; email still goes out as HTML only
// when it fails.
func (s *service) plainText(ctx context.Context, fn func(render.Renderer) (string, error)) string {
	if s.deps.Text == nil {
		return ""
	}
	text, err := fn(s.deps.Text)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("plain text body skipped")
		return ""
	}
	return text
}

func (s *service) send(ctx context.Context, kind domain.ReportKind, title, period, html, text string) *domain.SendResult {
	to := s.deps.Recipients.Recipients(kind)
	msg := domain.ReportMessage{
		Kind:        kind,
		Subject:     fmt.Sprintf("%s - %s", title, period),
		HTML:        html,
		Text:        text,
		Recipients:  to,
		GeneratedAt: s.deps.Clock(),
	}

	delivery := s.deps.Deliverer.Send(ctx, msg)

	zerolog.Ctx(ctx).Info().
		Str("kind", string(kind)).
		Str("delivery", string(delivery)).
		Strs("recipients", to).
		Msg("report generated")

	return &domain.SendResult{
		Success:    true,
		Recipients: to,
		Delivery:   delivery,
		Subject:    msg.Subject,
		HTML:       html,
	}
}
