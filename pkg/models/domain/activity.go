package domain

import (
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityTypeTask    ActivityType = "task"
	ActivityTypeProject ActivityType = "project"
	ActivityTypeIdea    ActivityType = "idea"
)

// ActivityEvent is a synthesized log line; it is never persisted.
type ActivityEvent struct {
	Type        ActivityType
	Description string
	Date        time.Time
}

// SynthesizeActivity builds activity events from recent mutations. Events are
// returned in discovery order: completed tasks, then projects, then ideas.
func SynthesizeActivity(tasks []Task, projects []ClientProject, ideas []Idea) []ActivityEvent {
	events := make([]ActivityEvent, 0, len(tasks)+len(projects)+len(ideas))

	for _, t := range tasks {
		if t.Status != TaskStatusDone {
			continue
		}
		date := t.UpdatedAt
		if date.IsZero() {
			date = t.CreatedAt
		}
		events = append(events, ActivityEvent{
			Type:        ActivityTypeTask,
			Description: fmt.Sprintf("Task completed: %s", t.Title),
			Date:        date,
		})
	}

	for _, p := range projects {
		verb := "started"
		if p.Status == ProjectStatusCompleted {
			verb = "completed"
		}
		events = append(events, ActivityEvent{
			Type:        ActivityTypeProject,
			Description: fmt.Sprintf("Project %s: %s", verb, p.ProjectName),
			Date:        p.CreatedAt,
		})
	}

	for _, i := range ideas {
		events = append(events, ActivityEvent{
			Type:        ActivityTypeIdea,
			Description: fmt.Sprintf("New idea submitted: %s", i.Title),
			Date:        i.CreatedAt,
		})
	}

	return events
}
