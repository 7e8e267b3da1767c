package api

import "time"

type ActivityEvent struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type WeeklyReport struct {
	Title        string          `json:"title"`
	Period       string          `json:"period"`
	Metrics      WeeklyMetrics   `json:"metrics"`
	Highlights   []ActivityEvent `json:"highlights"`
	TeamActivity TeamActivity    `json:"teamActivity"`
}

type WeeklyMetrics struct {
	TaskCompletion   int `json:"taskCompletion"`
	TasksCompleted   int `json:"tasksCompleted"`
	ActiveTasks      int `json:"activeTasks"`
	OverdueTasks     int `json:"overdueTasks"`
	TeamHours        int `json:"teamHours"`
	NewTasksThisWeek int `json:"newTasksThisWeek"`
}

type TeamActivity struct {
	TotalHoursLogged float64 `json:"totalHoursLogged"`
	EntriesCount     int     `json:"entriesCount"`
}

type MonthlyReport struct {
	Title            string           `json:"title"`
	Period           string           `json:"period"`
	ExecutiveSummary ExecutiveSummary `json:"executiveSummary"`
	TeamPerformance  TeamPerformance  `json:"teamPerformance"`
	ProjectStatus    ProjectStatus    `json:"projectStatus"`
	RecentMilestones []ActivityEvent  `json:"recentMilestones"`
}

type ExecutiveSummary struct {
	TaskCompletion    int     `json:"taskCompletion"`
	ActiveProjects    int     `json:"activeProjects"`
	CompletedProjects int     `json:"completedProjects"`
	Revenue           float64 `json:"revenue"`
	Expenses          float64 `json:"expenses"`
	BurnRate          float64 `json:"burnRate"`
	Runway            int     `json:"runway"`
}

type TeamPerformance struct {
	TasksCompleted    int     `json:"tasksCompleted"`
	ActiveTasks       int     `json:"activeTasks"`
	OverdueTasks      int     `json:"overdueTasks"`
	NewTasksThisMonth int     `json:"newTasksThisMonth"`
	TotalHoursLogged  float64 `json:"totalHoursLogged"`
	IdeasSubmitted    int     `json:"ideasSubmitted"`
}

type ProjectStatus struct {
	Active    []ActiveProject    `json:"active"`
	Completed []CompletedProject `json:"completed"`
}

type ActiveProject struct {
	Name    string     `json:"name"`
	Client  string     `json:"client"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"dueDate"`
}

type CompletedProject struct {
	Name          string    `json:"name"`
	Client        string    `json:"client"`
	CompletedDate time.Time `json:"completedDate"`
}

type SendResult struct {
	Success    bool     `json:"success"`
	Recipients []string `json:"recipients"`
	Delivery   string   `json:"delivery"`
	Subject    string   `json:"subject"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
