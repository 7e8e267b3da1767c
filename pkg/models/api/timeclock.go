package api

import "time"

type ClockRequest struct {
	UserID string `json:"userId"`
	Notes  string `json:"notes,omitempty"`
}

type TimeEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Date       time.Time  `json:"date"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut"`
	TotalHours *string    `json:"totalHours"`
	Notes      string     `json:"notes,omitempty"`
}

type DailyHours struct {
	Date  string `json:"date"`
	Hours string `json:"hours"`
}
