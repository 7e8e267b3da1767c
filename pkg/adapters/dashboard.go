package adapters

import (
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/models/store"
)

func MapStoreTaskToDomain(t store.Task) domain.Task {
	return domain.Task{
		ID:         t.ID,
		Title:      t.Title,
		Status:     domain.TaskStatus(t.Status),
		Priority:   domain.Priority(t.Priority),
		AssignedTo: deref(t.AssignedTo),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func MapDomainTaskToStore(t domain.Task, createdBy string) store.Task {
	return store.Task{
		ID:         t.ID,
		Title:      t.Title,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		AssignedTo: ref(t.AssignedTo),
		CreatedBy:  createdBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func MapStoreTimeEntryToDomain(e store.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		ID:         e.ID,
		UserID:     e.UserID,
		Date:       e.Date,
		ClockIn:    e.ClockIn,
		ClockOut:   e.ClockOut,
		TotalHours: deref(e.TotalHours),
		Notes:      deref(e.Notes),
	}
}

func MapDomainTimeEntryToStore(e domain.TimeEntry) store.TimeEntry {
	return store.TimeEntry{
		ID:         e.ID,
		UserID:     e.UserID,
		Date:       e.Date,
		ClockIn:    e.ClockIn,
		ClockOut:   e.ClockOut,
		TotalHours: ref(e.TotalHours),
		Notes:      ref(e.Notes),
	}
}

func MapStoreProjectToDomain(p store.ClientProject) domain.ClientProject {
	return domain.ClientProject{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		ClientName:  p.ClientName,
		Status:      domain.ProjectStatus(p.Status),
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func MapDomainProjectToStore(p domain.ClientProject) store.ClientProject {
	return store.ClientProject{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		ClientName:  p.ClientName,
		Status:      string(p.Status),
		DueDate:     p.DueDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func MapStoreIdeaToDomain(i store.Idea) domain.Idea {
	return domain.Idea{
		ID:          i.ID,
		Title:       i.Title,
		Status:      i.Status,
		SubmittedBy: i.SubmittedBy,
		CreatedAt:   i.CreatedAt,
	}
}

func MapDomainIdeaToStore(i domain.Idea) store.Idea {
	return store.Idea{
		ID:          i.ID,
		Title:       i.Title,
		Status:      i.Status,
		SubmittedBy: i.SubmittedBy,
		CreatedAt:   i.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
