package adapters

import (
	"github.com/clocksynk/dashboard/pkg/models/api"
	"github.com/clocksynk/dashboard/pkg/models/domain"
)

func MapTimeEntryDomainToApi(e domain.TimeEntry) api.TimeEntry {
	return api.TimeEntry{
		ID:         e.ID,
		UserID:     e.UserID,
		Date:       e.Date,
		ClockIn:    e.ClockIn,
		ClockOut:   e.ClockOut,
		TotalHours: ref(e.TotalHours),
		Notes:      e.Notes,
	}
}

func MapDailyHoursDomainToApi(rows []domain.DailyHours) []api.DailyHours {
	out := make([]api.DailyHours, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.DailyHours{Date: r.Date, Hours: r.Hours})
	}
	return out
}
