package store

import "time"

type Task struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	Status     string    `bson:"status"`
	Priority   string    `bson:"priority"`
	AssignedTo *string   `bson:"assignedTo,omitempty"`
	CreatedBy  string    `bson:"createdBy"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type TimeEntry struct {
	ID         string     `bson:"_id"`
	UserID     string     `bson:"userId"`
	Date       time.Time  `bson:"date"`
	ClockIn    time.Time  `bson:"clockIn"`
	ClockOut   *time.Time `bson:"clockOut,omitempty"`
	TotalHours *string    `bson:"totalHours,omitempty"`
	Notes      *string    `bson:"notes,omitempty"`
}

type ClientProject struct {
	ID          string     `bson:"_id"`
	ProjectName string     `bson:"projectName"`
	ClientName  string     `bson:"clientName"`
	Status      string     `bson:"status"`
	DueDate     *time.Time `bson:"dueDate,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

type Idea struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Status      string    `bson:"status"`
	SubmittedBy string    `bson:"submittedBy"`
	CreatedAt   time.Time `bson:"createdAt"`
}
