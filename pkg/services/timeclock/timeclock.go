package timeclock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("no open clock-in entry for today")
	ErrMissingUser      = errors.New("user id is required")
)

type Service interface {
	ClockIn(ctx context.Context, userID, notes string) (domain.TimeEntry, error)
	ClockOut(ctx context.Context, userID, notes string) (domain.TimeEntry, error)
	// WeeklyHours lists the user's entries from midnight seven days ago
	// through today, oldest first.
	WeeklyHours(ctx context.Context, userID string) ([]domain.DailyHours, error)
}

type service struct {
	store dashboard.Writer
	clock func() time.Time
	newID func() string
	// user id -> *sync.Mutex; a user's clock-in and clock-out run one at a time.
	locks sync.Map
}

func NewService(store dashboard.Writer, clock func() time.Time) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store: store,
		clock: clock,
		newID: func() string { return "time_" + uuid.NewString() },
	}
}

func (s *service) ClockIn(ctx context.Context, userID, notes string) (domain.TimeEntry, error) {
	if userID == "" {
		return domain.TimeEntry{}, ErrMissingUser
	}
	defer s.lock(userID)()
	now := s.clock()

	open, err := s.openEntry(ctx, userID, now)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if open != nil {
		return domain.TimeEntry{}, fmt.Errorf("user %s: %w", userID, ErrAlreadyClockedIn)
	}

	entry := domain.TimeEntry{
		ID:      s.newID(),
		UserID:  userID,
		Date:    now,
		ClockIn: now,
		Notes:   notes,
	}
	if err := s.store.AddTimeEntry(ctx, entry); err != nil {
		if errors.Is(err, dashboard.ErrDuplicate) {
			return domain.TimeEntry{}, fmt.Errorf("user %s: %w", userID, ErrAlreadyClockedIn)
		}
		return domain.TimeEntry{}, fmt.Errorf("clock in: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("user", userID).Str("entry", entry.ID).Msg("clocked in")
	return entry, nil
}

func (s *service) ClockOut(ctx context.Context, userID, notes string) (domain.TimeEntry, error) {
	if userID == "" {
		return domain.TimeEntry{}, ErrMissingUser
	}
	defer s.lock(userID)()
	now := s.clock()

	entry, err := s.openEntry(ctx, userID, now)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if entry == nil {
		return domain.TimeEntry{}, fmt.Errorf("user %s: %w", userID, ErrNotClockedIn)
	}

	entry.ClockOut = &now
	entry.TotalHours = FormatDuration(now.Sub(entry.ClockIn))
	if notes != "" {
		entry.Notes = notes
	}
	if err := s.store.UpdateTimeEntry(ctx, *entry); err != nil {
		return domain.TimeEntry{}, fmt.Errorf("clock out: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("user", userID).
		Str("entry", entry.ID).
		Str("total", entry.TotalHours).
		Msg("clocked out")
	return *entry, nil
}

func (s *service) WeeklyHours(ctx context.Context, userID string) ([]domain.DailyHours, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	today := startOfDay(s.clock())

	entries, err := s.store.UserTimeEntries(ctx, userID, today.AddDate(0, 0, -7), today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("weekly hours: %w", err)
	}

	rows := make([]domain.DailyHours, 0, len(entries))
	for _, e := range entries {
		hours := e.TotalHours
		if hours == "" {
			hours = "0:00"
		}
		rows = append(rows, domain.DailyHours{
			Date:  e.EffectiveDate().Format(time.DateOnly),
			Hours: hours,
		})
	}
	return rows, nil
}

func (s *service) lock(userID string) func() {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *service) openEntry(ctx context.Context, userID string, now time.Time) (*domain.TimeEntry, error) {
	day := startOfDay(now)
	entries, err := s.store.UserTimeEntries(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("lookup today's entries: %w", err)
	}
	for i := range entries {
		if entries[i].Open() {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// FormatDuration renders d as whole hours and minutes, "H:MM".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
