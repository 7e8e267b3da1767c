package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDashboardStore_Mongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

	mt.Run("tasks are decoded and mapped", func(mt *mtest.T) {
		store, err := NewStore(mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.tasks", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "t1"},
				{Key: "title", Value: "Ship v2"},
				{Key: "status", Value: "done"},
				{Key: "priority", Value: "high"},
				{Key: "assignedTo", Value: "erin"},
				{Key: "createdBy", Value: "system"},
				{Key: "createdAt", Value: now.Add(-48 * time.Hour)},
				{Key: "updatedAt", Value: now},
			},
		))

		tasks, err := store.Tasks(context.Background())
		require.NoError(mt, err)
		require.Len(mt, tasks, 1)
		assert.Equal(mt, "t1", tasks[0].ID)
		assert.Equal(mt, domain.TaskStatusDone, tasks[0].Status)
		assert.Equal(mt, "erin", tasks[0].AssignedTo)
		assert.True(mt, now.Equal(tasks[0].UpdatedAt))
	})

	mt.Run("recent activity keeps discovery order", func(mt *mtest.T) {
		store, err := NewStore(mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.tasks", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "t1"},
				{Key: "title", Value: "Ship v2"},
				{Key: "status", Value: "done"},
				{Key: "createdAt", Value: now.Add(-time.Hour)},
				{Key: "updatedAt", Value: now.Add(-time.Hour)},
			}),
			mtest.CreateCursorResponse(0, "test.clientProjects", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "p1"},
				{Key: "projectName", Value: "Portal"},
				{Key: "clientName", Value: "Acme"},
				{Key: "status", Value: "planning"},
				{Key: "createdAt", Value: now},
				{Key: "updatedAt", Value: now},
			}),
			mtest.CreateCursorResponse(0, "test.ideas", mtest.FirstBatch),
		)

		events, err := store.RecentActivity(context.Background(), now.Add(-7*24*time.Hour))
		require.NoError(mt, err)
		require.Len(mt, events, 2)
		assert.Equal(mt, "Task completed: Ship v2", events[0].Description)
		assert.Equal(mt, "Project started: Portal", events[1].Description)
	})

	mt.Run("duplicate key maps to ErrDuplicate", func(mt *mtest.T) {
		store, err := NewStore(mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err = store.AddIdea(context.Background(), domain.Idea{ID: "i1", Title: "Dark mode", CreatedAt: now})
		assert.ErrorIs(mt, err, dashboard.ErrDuplicate)
	})

	mt.Run("update of a missing entry is not found", func(mt *mtest.T) {
		store, err := NewStore(mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		out := now
		err = store.UpdateTimeEntry(context.Background(), domain.TimeEntry{ID: "missing", ClockOut: &out})
		assert.ErrorIs(mt, err, dashboard.ErrNotFound)
	})

	mt.Run("query failure is wrapped", func(mt *mtest.T) {
		store, err := NewStore(mt.DB)
		require.NoError(mt, err)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))

		_, err = store.Ideas(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find ideas")
	})
}

func TestNewStore_NilDatabase(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
