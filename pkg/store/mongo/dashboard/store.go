package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/models/store"
	"github.com/clocksynk/dashboard/pkg/store/dashboard"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TasksCollection          = "tasks"
	TimeEntriesCollection    = "timeEntries"
	ClientProjectsCollection = "clientProjects"
	IdeasCollection          = "ideas"
)

type dashboardStore struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) (dashboard.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo database is nil")
	}
	return &dashboardStore{db: db}, nil
}

func (s *dashboardStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (s *dashboardStore) Tasks(ctx context.Context) ([]domain.Task, error) {
	records, err := find[store.Task](ctx, s.db.Collection(TasksCollection), bson.D{}, sortDesc("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return mapAll(records, adapters.MapStoreTaskToDomain), nil
}

func (s *dashboardStore) TimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	records, err := find[store.TimeEntry](ctx, s.db.Collection(TimeEntriesCollection), bson.D{}, sortDesc("date"))
	if err != nil {
		return nil, fmt.Errorf("find time entries: %w", err)
	}
	return mapAll(records, adapters.MapStoreTimeEntryToDomain), nil
}

func (s *dashboardStore) ClientProjects(ctx context.Context) ([]domain.ClientProject, error) {
	records, err := find[store.ClientProject](ctx, s.db.Collection(ClientProjectsCollection), bson.D{}, sortDesc("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("find client projects: %w", err)
	}
	return mapAll(records, adapters.MapStoreProjectToDomain), nil
}

func (s *dashboardStore) Ideas(ctx context.Context) ([]domain.Idea, error) {
	records, err := find[store.Idea](ctx, s.db.Collection(IdeasCollection), bson.D{}, sortDesc("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("find ideas: %w", err)
	}
	return mapAll(records, adapters.MapStoreIdeaToDomain), nil
}

func (s *dashboardStore) RecentActivity(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error) {
	tasks, err := find[store.Task](ctx, s.db.Collection(TasksCollection), bson.D{
		{Key: "status", Value: string(domain.TaskStatusDone)},
		{Key: "updatedAt", Value: bson.D{{Key: "$gte", Value: since}}},
	}, sortDesc("updatedAt"))
	if err != nil {
		return nil, fmt.Errorf("find completed tasks: %w", err)
	}

	sinceCreated := bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: since}}}}

	projects, err := find[store.ClientProject](ctx, s.db.Collection(ClientProjectsCollection), sinceCreated, sortDesc("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("find recent projects: %w", err)
	}

	ideas, err := find[store.Idea](ctx, s.db.Collection(IdeasCollection), sinceCreated, sortDesc("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("find recent ideas: %w", err)
	}

	return domain.SynthesizeActivity(
		mapAll(tasks, adapters.MapStoreTaskToDomain),
		mapAll(projects, adapters.MapStoreProjectToDomain),
		mapAll(ideas, adapters.MapStoreIdeaToDomain),
	), nil
}

func (s *dashboardStore) AddTask(ctx context.Context, task domain.Task) error {
	return insert(ctx, s.db.Collection(TasksCollection), adapters.MapDomainTaskToStore(task, "system"))
}

func (s *dashboardStore) AddClientProject(ctx context.Context, project domain.ClientProject) error {
	return insert(ctx, s.db.Collection(ClientProjectsCollection), adapters.MapDomainProjectToStore(project))
}

func (s *dashboardStore) AddIdea(ctx context.Context, idea domain.Idea) error {
	r := adapters.MapDomainIdeaToStore(idea)
	if r.Status == "" {
		r.Status = "submitted"
	}
	return insert(ctx, s.db.Collection(IdeasCollection), r)
}

func (s *dashboardStore) AddTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	return insert(ctx, s.db.Collection(TimeEntriesCollection), adapters.MapDomainTimeEntryToStore(entry))
}

func (s *dashboardStore) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	r := adapters.MapDomainTimeEntryToStore(entry)
	res, err := s.db.Collection(TimeEntriesCollection).UpdateByID(ctx, r.ID, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "clockOut", Value: r.ClockOut},
			{Key: "totalHours", Value: r.TotalHours},
			{Key: "notes", Value: r.Notes},
		}},
	})
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("time entry %s: %w", entry.ID, dashboard.ErrNotFound)
	}
	return nil
}

func (s *dashboardStore) UserTimeEntries(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]domain.TimeEntry, error) {
	records, err := find[store.TimeEntry](ctx, s.db.Collection(TimeEntriesCollection), bson.D{
		{Key: "userId", Value: userID},
		{Key: "date", Value: bson.D{{Key: "$gte", Value: start}, {Key: "$lt", Value: end}}},
	}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find user time entries: %w", err)
	}
	return mapAll(records, adapters.MapStoreTimeEntryToDomain), nil
}

func find[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert into %s: %w", coll.Name(), dashboard.ErrDuplicate)
		}
		return fmt.Errorf("insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func sortDesc(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}})
}

func mapAll[S, D any](records []S, fn func(S) D) []D {
	out := make([]D, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}
