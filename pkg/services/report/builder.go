package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/clocksynk/dashboard/pkg/services/metrics"
)

const (
	WeeklyTitle  = "ClockSynk Weekly Team Report"
	MonthlyTitle = "ClockSynk Monthly Business Report"

	HighlightsLimit = 5
	MilestonesLimit = 10

	periodDateLayout  = "1/2/2006"
	periodMonthLayout = "January 2006"
)

// WeeklyWindow covers the seven days before now.
func WeeklyWindow(now time.Time) domain.Window {
	return domain.Window{Start: now.AddDate(0, 0, -7), End: now}
}

// MonthlyWindow starts at midnight on the first of now's month, in now's location.
func MonthlyWindow(now time.Time) domain.Window {
	return domain.Window{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Builder composes report documents. Output depends only on its arguments.
type Builder interface {
	BuildWeekly(snapshot metrics.Snapshot, now time.Time) domain.WeeklyReport
	BuildMonthly(snapshot metrics.Snapshot, now time.Time) domain.MonthlyReport
}

type builder struct{}

func NewBuilder() Builder {
	return builder{}
}

func (builder) BuildWeekly(snapshot metrics.Snapshot, now time.Time) domain.WeeklyReport {
	window := WeeklyWindow(now)
	m := metrics.Aggregate(snapshot, window)

	return domain.WeeklyReport{
		Title: WeeklyTitle,
		Period: fmt.Sprintf("Week of %s - %s",
			window.Start.Format(periodDateLayout), window.End.Format(periodDateLayout)),
		Metrics: domain.WeeklyMetrics{
			TaskCompletion:   m.TaskCompletion,
			TasksCompleted:   m.TasksCompleted,
			ActiveTasks:      m.ActiveTasks,
			OverdueTasks:     m.OverdueTasks,
			TeamHours:        m.TeamHours,
			NewTasksThisWeek: m.NewTasksInWindow,
		},
		Highlights: digest(snapshot.Activity, window, HighlightsLimit),
		TeamActivity: domain.TeamActivity{
			TotalHoursLogged: m.TotalHoursLogged,
			EntriesCount:     m.EntriesCount,
		},
	}
}

func (builder) BuildMonthly(snapshot metrics.Snapshot, now time.Time) domain.MonthlyReport {
	window := MonthlyWindow(now)
	m := metrics.Aggregate(snapshot, window)

	active := make([]domain.ActiveProject, 0, len(m.ActiveProjects))
	for _, p := range m.ActiveProjects {
		var due *time.Time
		if p.DueDate != nil {
			d := *p.DueDate
			due = &d
		}
		active = append(active, domain.ActiveProject{
			Name:    p.ProjectName,
			Client:  p.ClientName,
			Status:  p.Status,
			DueDate: due,
		})
	}

	completed := make([]domain.CompletedProject, 0, len(m.CompletedProjects))
	for _, p := range m.CompletedProjects {
		completed = append(completed, domain.CompletedProject{
			Name:          p.ProjectName,
			Client:        p.ClientName,
			CompletedDate: p.UpdatedAt,
		})
	}

	return domain.MonthlyReport{
		Title:  MonthlyTitle,
		Period: window.Start.Format(periodMonthLayout),
		ExecutiveSummary: domain.ExecutiveSummary{
			TaskCompletion:    m.TaskCompletion,
			ActiveProjects:    len(m.ActiveProjects),
			CompletedProjects: len(m.CompletedProjects),
			Revenue:           m.Financials.Revenue,
			Expenses:          m.Financials.Expenses,
			BurnRate:          m.Financials.BurnRate,
			Runway:            m.Financials.Runway,
		},
		TeamPerformance: domain.TeamPerformance{
			TasksCompleted:    m.TasksCompleted,
			ActiveTasks:       m.ActiveTasks,
			OverdueTasks:      m.OverdueTasks,
			NewTasksThisMonth: m.NewTasksInWindow,
			TotalHoursLogged:  m.TotalHoursLogged,
			IdeasSubmitted:    m.IdeasSubmitted,
		},
		ProjectStatus: domain.ProjectStatusSummary{
			Active:    active,
			Completed: completed,
		},
		RecentMilestones: digest(snapshot.Activity, window, MilestonesLimit),
	}
}

// digest keeps events inside window, newest first, capped at limit. Events
// with equal dates keep their discovery order.
func digest(events []domain.ActivityEvent, window domain.Window, limit int) []domain.ActivityEvent {
	out := make([]domain.ActivityEvent, 0, min(len(events), limit))
	for _, e := range events {
		if window.Contains(e.Date) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
