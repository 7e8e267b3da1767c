package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"github.com/clocksynk/dashboard/pkg/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store dashboard.Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

var base = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestDashboardStore_Tasks(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - round trip", func(t *testing.T) {
		err := f.store.AddTask(ctx, domain.Task{
			ID:         "task-1",
			Title:      "Ship newsletter",
			Status:     domain.TaskStatusDone,
			Priority:   domain.PriorityHigh,
			AssignedTo: "jared",
			CreatedAt:  base,
			UpdatedAt:  base.Add(time.Hour),
		})
		require.NoError(t, err)

		tasks, err := f.store.Tasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Ship newsletter", tasks[0].Title)
		assert.Equal(t, domain.TaskStatusDone, tasks[0].Status)
		assert.Equal(t, "jared", tasks[0].AssignedTo)
		assert.True(t, base.Equal(tasks[0].CreatedAt))
	})

	t.Run("error - duplicate id", func(t *testing.T) {
		err := f.store.AddTask(ctx, domain.Task{
			ID:        "task-1",
			Title:     "Again",
			Status:    domain.TaskStatusPending,
			Priority:  domain.PriorityLow,
			CreatedAt: base,
			UpdatedAt: base,
		})
		assert.True(t, errors.Is(err, dashboard.ErrDuplicate))
	})
}

func TestDashboardStore_TimeEntries(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	open := domain.TimeEntry{ID: "te-1", UserID: "erin", Date: base, ClockIn: base}
	require.NoError(t, f.store.AddTimeEntry(ctx, open))

	out := base.Add(8*time.Hour + 30*time.Minute)
	open.ClockOut = &out
	open.TotalHours = "8:30"
	require.NoError(t, f.store.UpdateTimeEntry(ctx, open))

	entries, err := f.store.TimeEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "8:30", entries[0].TotalHours)
	require.NotNil(t, entries[0].ClockOut)
	assert.True(t, out.Equal(*entries[0].ClockOut))

	week, err := f.store.UserTimeEntries(ctx, "erin", base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, week, 1)

	other, err := f.store.UserTimeEntries(ctx, "bill", base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, other)

	err = f.store.UpdateTimeEntry(ctx, domain.TimeEntry{ID: "missing"})
	assert.True(t, errors.Is(err, dashboard.ErrNotFound))
}

func TestDashboardStore_RecentActivity(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.AddTask(ctx, domain.Task{
		ID: "t-done", Title: "Close books", Status: domain.TaskStatusDone, Priority: domain.PriorityMedium,
		CreatedAt: base.AddDate(0, 0, -3), UpdatedAt: base,
	}))
	require.NoError(t, f.store.AddTask(ctx, domain.Task{
		ID: "t-open", Title: "Draft post", Status: domain.TaskStatusPending, Priority: domain.PriorityLow,
		CreatedAt: base, UpdatedAt: base,
	}))
	require.NoError(t, f.store.AddTask(ctx, domain.Task{
		ID: "t-old", Title: "Old win", Status: domain.TaskStatusDone, Priority: domain.PriorityLow,
		CreatedAt: base.AddDate(0, -2, 0), UpdatedAt: base.AddDate(0, -2, 0),
	}))
	require.NoError(t, f.store.AddClientProject(ctx, domain.ClientProject{
		ID: "p-1", ProjectName: "Rebrand", ClientName: "Acme", Status: domain.ProjectStatusCompleted,
		CreatedAt: base.Add(-time.Hour), UpdatedAt: base,
	}))
	require.NoError(t, f.store.AddIdea(ctx, domain.Idea{
		ID: "i-1", Title: "Four-day week", SubmittedBy: "bill", CreatedAt: base.Add(-2 * time.Hour),
	}))

	events, err := f.store.RecentActivity(ctx, base.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.ActivityTypeTask, events[0].Type)
	assert.Equal(t, "Task completed: Close books", events[0].Description)
	assert.Equal(t, "Project completed: Rebrand", events[1].Description)
	assert.Equal(t, "New idea submitted: Four-day week", events[2].Description)
}

func TestDashboardStore_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, assigned_to").
		WillReturnError(errors.New("connection refused"))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.Tasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query tasks")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
