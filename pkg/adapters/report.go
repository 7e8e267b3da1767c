package adapters

import (
	"github.com/clocksynk/dashboard/pkg/models/api"
	"github.com/clocksynk/dashboard/pkg/models/domain"
)

func MapWeeklyReportDomainToApi(r domain.WeeklyReport) api.WeeklyReport {
	return api.WeeklyReport{
		Title:  r.Title,
		Period: r.Period,
		Metrics: api.WeeklyMetrics{
			TaskCompletion:   r.Metrics.TaskCompletion,
			TasksCompleted:   r.Metrics.TasksCompleted,
			ActiveTasks:      r.Metrics.ActiveTasks,
			OverdueTasks:     r.Metrics.OverdueTasks,
			TeamHours:        r.Metrics.TeamHours,
			NewTasksThisWeek: r.Metrics.NewTasksThisWeek,
		},
		Highlights: mapActivityDomainToApi(r.Highlights),
		TeamActivity: api.TeamActivity{
			TotalHoursLogged: r.TeamActivity.TotalHoursLogged,
			EntriesCount:     r.TeamActivity.EntriesCount,
		},
	}
}

func MapWeeklyReportApiToDomain(r api.WeeklyReport) domain.WeeklyReport {
	return domain.WeeklyReport{
		Title:  r.Title,
		Period: r.Period,
		Metrics: domain.WeeklyMetrics{
			TaskCompletion:   r.Metrics.TaskCompletion,
			TasksCompleted:   r.Metrics.TasksCompleted,
			ActiveTasks:      r.Metrics.ActiveTasks,
			OverdueTasks:     r.Metrics.OverdueTasks,
			TeamHours:        r.Metrics.TeamHours,
			NewTasksThisWeek: r.Metrics.NewTasksThisWeek,
		},
		Highlights: mapActivityApiToDomain(r.Highlights),
		TeamActivity: domain.TeamActivity{
			TotalHoursLogged: r.TeamActivity.TotalHoursLogged,
			EntriesCount:     r.TeamActivity.EntriesCount,
		},
	}
}

func MapMonthlyReportDomainToApi(r domain.MonthlyReport) api.MonthlyReport {
	active := make([]api.ActiveProject, 0, len(r.ProjectStatus.Active))
	for _, p := range r.ProjectStatus.Active {
		active = append(active, api.ActiveProject{
			Name:    p.Name,
			Client:  p.Client,
			Status:  string(p.Status),
			DueDate: p.DueDate,
		})
	}
	completed := make([]api.CompletedProject, 0, len(r.ProjectStatus.Completed))
	for _, p := range r.ProjectStatus.Completed {
		completed = append(completed, api.CompletedProject{
			Name:          p.Name,
			Client:        p.Client,
			CompletedDate: p.CompletedDate,
		})
	}

	return api.MonthlyReport{
		Title:  r.Title,
		Period: r.Period,
		ExecutiveSummary: api.ExecutiveSummary{
			TaskCompletion:    r.ExecutiveSummary.TaskCompletion,
			ActiveProjects:    r.ExecutiveSummary.ActiveProjects,
			CompletedProjects: r.ExecutiveSummary.CompletedProjects,
			Revenue:           r.ExecutiveSummary.Revenue,
			Expenses:          r.ExecutiveSummary.Expenses,
			BurnRate:          r.ExecutiveSummary.BurnRate,
			Runway:            r.ExecutiveSummary.Runway,
		},
		TeamPerformance: api.TeamPerformance{
			TasksCompleted:    r.TeamPerformance.TasksCompleted,
			ActiveTasks:       r.TeamPerformance.ActiveTasks,
			OverdueTasks:      r.TeamPerformance.OverdueTasks,
			NewTasksThisMonth: r.TeamPerformance.NewTasksThisMonth,
			TotalHoursLogged:  r.TeamPerformance.TotalHoursLogged,
			IdeasSubmitted:    r.TeamPerformance.IdeasSubmitted,
		},
		ProjectStatus: api.ProjectStatus{
			Active:    active,
			Completed: completed,
		},
		RecentMilestones: mapActivityDomainToApi(r.RecentMilestones),
	}
}

func MapMonthlyReportApiToDomain(r api.MonthlyReport) domain.MonthlyReport {
	active := make([]domain.ActiveProject, 0, len(r.ProjectStatus.Active))
	for _, p := range r.ProjectStatus.Active {
		active = append(active, domain.ActiveProject{
			Name:    p.Name,
			Client:  p.Client,
			Status:  domain.ProjectStatus(p.Status),
			DueDate: p.DueDate,
		})
	}
	completed := make([]domain.CompletedProject, 0, len(r.ProjectStatus.Completed))
	for _, p := range r.ProjectStatus.Completed {
		completed = append(completed, domain.CompletedProject{
			Name:          p.Name,
			Client:        p.Client,
			CompletedDate: p.CompletedDate,
		})
	}

	return domain.MonthlyReport{
		Title:  r.Title,
		Period: r.Period,
		ExecutiveSummary: domain.ExecutiveSummary{
			TaskCompletion:    r.ExecutiveSummary.TaskCompletion,
			ActiveProjects:    r.ExecutiveSummary.ActiveProjects,
			CompletedProjects: r.ExecutiveSummary.CompletedProjects,
			Revenue:           r.ExecutiveSummary.Revenue,
			Expenses:          r.ExecutiveSummary.Expenses,
			BurnRate:          r.ExecutiveSummary.BurnRate,
			Runway:            r.ExecutiveSummary.Runway,
		},
		TeamPerformance: domain.TeamPerformance{
			TasksCompleted:    r.TeamPerformance.TasksCompleted,
			ActiveTasks:       r.TeamPerformance.ActiveTasks,
			OverdueTasks:      r.TeamPerformance.OverdueTasks,
			NewTasksThisMonth: r.TeamPerformance.NewTasksThisMonth,
			TotalHoursLogged:  r.TeamPerformance.TotalHoursLogged,
			IdeasSubmitted:    r.TeamPerformance.IdeasSubmitted,
		},
		ProjectStatus: domain.ProjectStatusSummary{
			Active:    active,
			Completed: completed,
		},
		RecentMilestones: mapActivityApiToDomain(r.RecentMilestones),
	}
}

func MapSendResultDomainToApi(r domain.SendResult) api.SendResult {
	recipients := r.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return api.SendResult{
		Success:    r.Success,
		Recipients: recipients,
		Delivery:   string(r.Delivery),
		Subject:    r.Subject,
	}
}

func mapActivityDomainToApi(events []domain.ActivityEvent) []api.ActivityEvent {
	out := make([]api.ActivityEvent, 0, len(events))
	for _, e := range events {
		out = append(out, api.ActivityEvent{
			Type:        string(e.Type),
			Description: e.Description,
			Date:        e.Date,
		})
	}
	return out
}

func mapActivityApiToDomain(events []api.ActivityEvent) []domain.ActivityEvent {
	out := make([]domain.ActivityEvent, 0, len(events))
	for _, e := range events {
		out = append(out, domain.ActivityEvent{
			Type:        domain.ActivityType(e.Type),
			Description: e.Description,
			Date:        e.Date,
		})
	}
	return out
}
