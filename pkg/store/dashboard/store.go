package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Reader serves the full entity collections a report snapshot is built from.
// Collections are returned unfiltered; windowing happens in the aggregator.
type Reader interface {
	Tasks(ctx context.Context) ([]domain.Task, error)
	TimeEntries(ctx context.Context) ([]domain.TimeEntry, error)
	ClientProjects(ctx context.Context) ([]domain.ClientProject, error)
	Ideas(ctx context.Context) ([]domain.Idea, error)
	// RecentActivity returns events dated at or after since, in discovery
	// order (tasks, projects, ideas). It does not sort across types.
	RecentActivity(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error)
}

// Writer supports seeding and the time clock.
type Writer interface {
	AddTask(ctx context.Context, task domain.Task) error
	AddClientProject(ctx context.Context, project domain.ClientProject) error
	AddIdea(ctx context.Context, idea domain.Idea) error
	AddTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error
	UserTimeEntries(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeEntry, error)
}

type Store interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
