package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
)

// File is the YAML layout of a seed file. Timestamps are RFC 3339.
type File struct {
	Tasks       []Task      `yaml:"tasks"`
	Projects    []Project   `yaml:"projects"`
	Ideas       []Idea      `yaml:"ideas"`
	TimeEntries []TimeEntry `yaml:"timeEntries"`
}

type Task struct {
	ID         string    `yaml:"id"`
	Title      string    `yaml:"title"`
	Status     string    `yaml:"status"`
	Priority   string    `yaml:"priority"`
	AssignedTo string    `yaml:"assignedTo"`
	CreatedAt  time.Time `yaml:"createdAt"`
	UpdatedAt  time.Time `yaml:"updatedAt"`
}

type Project struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Client    string     `yaml:"client"`
	Status    string     `yaml:"status"`
	DueDate   *time.Time `yaml:"dueDate"`
	CreatedAt time.Time  `yaml:"createdAt"`
	UpdatedAt time.Time  `yaml:"updatedAt"`
}

type Idea struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Status      string    `yaml:"status"`
	SubmittedBy string    `yaml:"submittedBy"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type TimeEntry struct {
	ID         string     `yaml:"id"`
	UserID     string     `yaml:"userId"`
	Date       time.Time  `yaml:"date"`
	ClockIn    time.Time  `yaml:"clockIn"`
	ClockOut   *time.Time `yaml:"clockOut"`
	TotalHours string     `yaml:"totalHours"`
	Notes      string     `yaml:"notes"`
}

type Summary struct {
	Inserted int
	Skipped  int
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &file, nil
}

// Seed writes every record in file. Records whose id already exists are
// skipped so a seed file can be applied repeatedly.
func Seed(ctx context.Context, w dashboard.Writer, file *File) (Summary, error) {
	var summary Summary
	apply := func(kind, id string, err error) error {
		switch {
		case err == nil:
			summary.Inserted++
		case errors.Is(err, dashboard.ErrDuplicate):
			summary.Skipped++
			zerolog.Ctx(ctx).Debug().Str("kind", kind).Str("id", id).Msg("fixture already present")
		default:
			return fmt.Errorf("seed %s %s: %w", kind, id, err)
		}
		return nil
	}

	for _, t := range file.Tasks {
		task := domain.Task{
			ID:         idOr(t.ID),
			Title:      t.Title,
			Status:     domain.TaskStatus(orDefault(t.Status, string(domain.TaskStatusPending))),
			Priority:   domain.Priority(orDefault(t.Priority, string(domain.PriorityMedium))),
			AssignedTo: t.AssignedTo,
			CreatedAt:  t.CreatedAt,
			UpdatedAt:  latest(t.UpdatedAt, t.CreatedAt),
		}
		if err := apply("task", task.ID, w.AddTask(ctx, task)); err != nil {
			return summary, err
		}
	}

	for _, p := range file.Projects {
		project := domain.ClientProject{
			ID:          idOr(p.ID),
			ProjectName: p.Name,
			ClientName:  p.Client,
			Status:      domain.ProjectStatus(orDefault(p.Status, string(domain.ProjectStatusPlanning))),
			DueDate:     p.DueDate,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   latest(p.UpdatedAt, p.CreatedAt),
		}
		if err := apply("project", project.ID, w.AddClientProject(ctx, project)); err != nil {
			return summary, err
		}
	}

	for _, i := range file.Ideas {
		idea := domain.Idea{
			ID:          idOr(i.ID),
			Title:       i.Title,
			Status:      i.Status,
			SubmittedBy: i.SubmittedBy,
			CreatedAt:   i.CreatedAt,
		}
		if err := apply("idea", idea.ID, w.AddIdea(ctx, idea)); err != nil {
			return summary, err
		}
	}

	for _, e := range file.TimeEntries {
		entry := domain.TimeEntry{
			ID:         idOr(e.ID),
			UserID:     e.UserID,
			Date:       latest(e.Date, e.ClockIn),
			ClockIn:    e.ClockIn,
			ClockOut:   e.ClockOut,
			TotalHours: e.TotalHours,
			Notes:      e.Notes,
		}
		if err := apply("time entry", entry.ID, w.AddTimeEntry(ctx, entry)); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func idOr(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func latest(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}
