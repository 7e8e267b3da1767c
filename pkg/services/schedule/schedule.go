package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

// Cron expressions use seconds precision: second minute hour day month weekday.
const (
	DefaultWeeklySpec  = "0 0 9 * * 1"
	DefaultMonthlySpec = "0 0 9 1 * *"
)

// Sender is the subset of report.Service the scheduler drives.
type Sender interface {
	SendWeekly(ctx context.Context) (*domain.SendResult, error)
	SendMonthly(ctx context.Context) (*domain.SendResult, error)
}

type Config struct {
	WeeklySpec  string
	MonthlySpec string
	Location    *time.Location
	// RunTimeout bounds a single scheduled generation.
	RunTimeout time.Duration
}

type Scheduler struct {
	cron    *cron.Cron
	sender  Sender
	logger  zerolog.Logger
	timeout time.Duration
}

func NewScheduler(sender Sender, cfg Config, logger zerolog.Logger) (*Scheduler, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender is nil")
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	timeout := cfg.RunTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		sender:  sender,
		logger:  logger,
		timeout: timeout,
	}

	weekly := cfg.WeeklySpec
	if weekly == "" {
		weekly = DefaultWeeklySpec
	}
	if _, err := s.cron.AddFunc(weekly, func() { s.Run(domain.ReportKindWeekly) }); err != nil {
		return nil, fmt.Errorf("schedule weekly report %q: %w", weekly, err)
	}

	monthly := cfg.MonthlySpec
	if monthly == "" {
		monthly = DefaultMonthlySpec
	}
	if _, err := s.cron.AddFunc(monthly, func() { s.Run(domain.ReportKindMonthly) }); err != nil {
		return nil, fmt.Errorf("schedule monthly report %q: %w", monthly, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("entries", len(s.cron.Entries())).Msg("report scheduler started")
}

// Stop halts the scheduler and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.logger.Info().Msg("report scheduler stopped")
	return ctx
}

// Next reports the upcoming trigger time of each scheduled report.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Next)
	}
	return out
}

// Run generates and sends one report. Failures are logged; a scheduled run
// has no caller to return them to.
func (s *Scheduler) Run(kind domain.ReportKind) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	logger := s.logger.With().Str("report", string(kind)).Logger()
	ctx = logger.WithContext(ctx)

	var (
		res *domain.SendResult
		err error
	)
	switch kind {
	case domain.ReportKindWeekly:
		res, err = s.sender.SendWeekly(ctx)
	case domain.ReportKindMonthly:
		res, err = s.sender.SendMonthly(ctx)
	default:
		logger.Error().Msg("unknown report kind")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("scheduled report failed")
		return
	}
	logger.Info().
		Str("delivery", string(res.Delivery)).
		Strs("recipients", res.Recipients).
		Msg("scheduled report sent")
}
