package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusOverdue    TaskStatus = "overdue"
	TaskStatusDone       TaskStatus = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID         string
	Title      string
	Status     TaskStatus
	Priority   Priority
	AssignedTo string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Idea struct {
	ID          string
	Title       string
	Status      string
	SubmittedBy string
	CreatedAt   time.Time
}
