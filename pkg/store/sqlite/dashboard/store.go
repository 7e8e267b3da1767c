package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/models/store"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"github.com/clocksynk/dashboard/pkg/store/sqlite"
	"github.com/rs/zerolog"
)

type dashboardStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (dashboard.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &dashboardStore{db: db}, nil
}

func (s *dashboardStore) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *dashboardStore) Tasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, assigned_to, status, priority, created_by, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer closeRows(ctx, rows)

	records, err := scanTaskRows(rows)
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, adapters.MapStoreTaskToDomain(r))
	}
	return tasks, nil
}

func (s *dashboardStore) TimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, clock_in, clock_out, total_hours, notes
		FROM time_entries
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanTimeEntries(rows)
}

func (s *dashboardStore) ClientProjects(ctx context.Context) ([]domain.ClientProject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, client_name, status, due_date, created_at, updated_at
		FROM client_projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query client projects: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanProjects(rows)
}

func (s *dashboardStore) Ideas(ctx context.Context) ([]domain.Idea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, submitted_by, created_at
		FROM ideas
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanIdeas(rows)
}

func (s *dashboardStore) RecentActivity(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error) {
	since = since.UTC()

	taskRows, err := s.db.QueryContext(ctx, `
		SELECT id, title, assigned_to, status, priority, created_by, created_at, updated_at
		FROM tasks
		WHERE status = 'done' AND updated_at >= ?
		ORDER BY updated_at DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query completed tasks: %w", err)
	}
	taskRecords, err := scanTaskRows(taskRows)
	closeRows(ctx, taskRows)
	if err != nil {
		return nil, fmt.Errorf("scan completed tasks: %w", err)
	}
	tasks := make([]domain.Task, 0, len(taskRecords))
	for _, r := range taskRecords {
		tasks = append(tasks, adapters.MapStoreTaskToDomain(r))
	}

	projectRows, err := s.db.QueryContext(ctx, `
		SELECT id, project_name, client_name, status, due_date, created_at, updated_at
		FROM client_projects
		WHERE created_at >= ?
		ORDER BY created_at DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query recent projects: %w", err)
	}
	projects, err := scanProjects(projectRows)
	closeRows(ctx, projectRows)
	if err != nil {
		return nil, err
	}

	ideaRows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, submitted_by, created_at
		FROM ideas
		WHERE created_at >= ?
		ORDER BY created_at DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query recent ideas: %w", err)
	}
	ideas, err := scanIdeas(ideaRows)
	closeRows(ctx, ideaRows)
	if err != nil {
		return nil, err
	}

	return domain.SynthesizeActivity(tasks, projects, ideas), nil
}

func (s *dashboardStore) AddTask(ctx context.Context, task domain.Task) error {
	r := adapters.MapDomainTaskToStore(task, "system")
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO tasks (id, title, assigned_to, status, priority, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.AssignedTo, r.Status, r.Priority, r.CreatedBy, r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
	if err != nil {
		return wrapWriteErr("insert task", err)
	}
	return nil
}

func (s *dashboardStore) AddClientProject(ctx context.Context, project domain.ClientProject) error {
	r := adapters.MapDomainProjectToStore(project)
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO client_projects (id, project_name, client_name, status, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ProjectName, r.ClientName, r.Status, utcPtr(r.DueDate), r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
	if err != nil {
		return wrapWriteErr("insert client project", err)
	}
	return nil
}

func (s *dashboardStore) AddIdea(ctx context.Context, idea domain.Idea) error {
	r := adapters.MapDomainIdeaToStore(idea)
	if r.Status == "" {
		r.Status = "submitted"
	}
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO ideas (id, title, status, submitted_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Status, r.SubmittedBy, r.CreatedAt.UTC(),
	)
	if err != nil {
		return wrapWriteErr("insert idea", err)
	}
	return nil
}

func (s *dashboardStore) AddTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	r := adapters.MapDomainTimeEntryToStore(entry)
	_, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO time_entries (id, user_id, date, clock_in, clock_out, total_hours, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Date.UTC(), r.ClockIn.UTC(), utcPtr(r.ClockOut), r.TotalHours, r.Notes,
	)
	if err != nil {
		return wrapWriteErr("insert time entry", err)
	}
	return nil
}

func (s *dashboardStore) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	r := adapters.MapDomainTimeEntryToStore(entry)
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE time_entries SET clock_out = ?, total_hours = ?, notes = ?
		WHERE id = ?`,
		utcPtr(r.ClockOut), r.TotalHours, r.Notes, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry %s: %w", entry.ID, dashboard.ErrNotFound)
	}
	return nil
}

func (s *dashboardStore) UserTimeEntries(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]domain.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, date, clock_in, clock_out, total_hours, notes
		FROM time_entries
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC
	`, userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query user time entries: %w", err)
	}
	defer closeRows(ctx, rows)

	return scanTimeEntries(rows)
}

func scanTaskRows(rows *sql.Rows) ([]store.Task, error) {
	records := make([]store.Task, 0)
	for rows.Next() {
		var (
			r          store.Task
			assignedTo sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &assignedTo, &r.Status, &r.Priority, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if assignedTo.Valid {
			r.AssignedTo = &assignedTo.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanTimeEntries(rows *sql.Rows) ([]domain.TimeEntry, error) {
	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		var (
			r                 store.TimeEntry
			clockOut          sql.NullTime
			totalHours, notes sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.ClockIn, &clockOut, &totalHours, &notes); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		if clockOut.Valid {
			t := clockOut.Time
			r.ClockOut = &t
		}
		if totalHours.Valid {
			r.TotalHours = &totalHours.String
		}
		if notes.Valid {
			r.Notes = &notes.String
		}
		entries = append(entries, adapters.MapStoreTimeEntryToDomain(r))
	}
	return entries, rows.Err()
}

func scanProjects(rows *sql.Rows) ([]domain.ClientProject, error) {
	projects := make([]domain.ClientProject, 0)
	for rows.Next() {
		var (
			r       store.ClientProject
			dueDate sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.ProjectName, &r.ClientName, &r.Status, &dueDate, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client project: %w", err)
		}
		if dueDate.Valid {
			t := dueDate.Time
			r.DueDate = &t
		}
		projects = append(projects, adapters.MapStoreProjectToDomain(r))
	}
	return projects, rows.Err()
}

func scanIdeas(rows *sql.Rows) ([]domain.Idea, error) {
	ideas := make([]domain.Idea, 0)
	for rows.Next() {
		var r store.Idea
		if err := rows.Scan(&r.ID, &r.Title, &r.Status, &r.SubmittedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, adapters.MapStoreIdeaToDomain(r))
	}
	return ideas, rows.Err()
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close rows")
	}
}

func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func wrapWriteErr(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", op, dashboard.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
