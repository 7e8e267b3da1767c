package domain

import "time"

// TimeEntry is a single clock-in/clock-out pair. TotalHours is derived on
// clock-out and formatted as "H:MM".
type TimeEntry struct {
	ID         string
	UserID     string
	Date       time.Time
	ClockIn    time.Time
	ClockOut   *time.Time
	TotalHours string
	Notes      string
}

func (e TimeEntry) Open() bool {
	return e.ClockOut == nil
}

// EffectiveDate is the timestamp used to place the entry in a report window.
func (e TimeEntry) EffectiveDate() time.Time {
	if e.Date.IsZero() {
		return e.ClockIn
	}
	return e.Date
}

// DailyHours is one row of a user's weekly timesheet.
type DailyHours struct {
	Date  string
	Hours string
}
