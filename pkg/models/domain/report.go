package domain

import "time"

type ReportKind string

const (
	ReportKindWeekly  ReportKind = "weekly"
	ReportKindMonthly ReportKind = "monthly"
)

func ParseReportKind(s string) (ReportKind, bool) {
	switch ReportKind(s) {
	case ReportKindWeekly:
		return ReportKindWeekly, true
	case ReportKindMonthly:
		return ReportKindMonthly, true
	}
	return "", false
}

// Window is the half-open range [Start, End) a report aggregates over.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WeeklyReport represents the team-focused weekly digest
type WeeklyReport struct {
	Title        string
	Period       string
	Metrics      WeeklyMetrics
	Highlights   []ActivityEvent
	TeamActivity TeamActivity
}

type WeeklyMetrics struct {
	TaskCompletion   int
	TasksCompleted   int
	ActiveTasks      int
	OverdueTasks     int
	TeamHours        int
	NewTasksThisWeek int
}

type TeamActivity struct {
	TotalHoursLogged float64
	EntriesCount     int
}

// MonthlyReport represents the business-focused monthly report
type MonthlyReport struct {
	Title            string
	Period           string
	ExecutiveSummary ExecutiveSummary
	TeamPerformance  TeamPerformance
	ProjectStatus    ProjectStatusSummary
	RecentMilestones []ActivityEvent
}

type ExecutiveSummary struct {
	TaskCompletion    int
	ActiveProjects    int
	CompletedProjects int
	Revenue           float64
	Expenses          float64
	BurnRate          float64
	Runway            int
}

type TeamPerformance struct {
	TasksCompleted    int
	ActiveTasks       int
	OverdueTasks      int
	NewTasksThisMonth int
	TotalHoursLogged  float64
	IdeasSubmitted    int
}

type ProjectStatusSummary struct {
	Active    []ActiveProject
	Completed []CompletedProject
}

type ActiveProject struct {
	Name    string
	Client  string
	Status  ProjectStatus
	DueDate *time.Time
}

type CompletedProject struct {
	Name          string
	Client        string
	CompletedDate time.Time
}
