package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

type TableConfig struct {
	LabelWidth int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 28,
		ValueWidth: 16,
	}
}

const textTemplate = `{{.Title}}
{{.Period}}
{{if .Monthly}}{{with .Monthly}}
=== Executive Summary ===
{{separator}}
{{row "Task Completion" (percent .ExecutiveSummary.TaskCompletion)}}
{{row "Active Projects" .ExecutiveSummary.ActiveProjects}}
{{row "Completed Projects" .ExecutiveSummary.CompletedProjects}}
{{row "Revenue" (currency .ExecutiveSummary.Revenue)}}
{{row "Expenses" (currency .ExecutiveSummary.Expenses)}}
{{row "Burn Rate" (currency .ExecutiveSummary.BurnRate)}}
{{row "Runway (months)" .ExecutiveSummary.Runway}}
{{separator}}

=== Team Performance ===
{{separator}}
{{row "Tasks Completed" .TeamPerformance.TasksCompleted}}
{{row "Active Tasks" .TeamPerformance.ActiveTasks}}
{{row "Overdue Tasks" .TeamPerformance.OverdueTasks}}
{{row "New Tasks This Month" .TeamPerformance.NewTasksThisMonth}}
{{row "Hours Logged" (hours .TeamPerformance.TotalHoursLogged)}}
{{row "Ideas Submitted" .TeamPerformance.IdeasSubmitted}}
{{separator}}

=== Active Projects ({{len .ProjectStatus.Active}}) ===
{{range .ProjectStatus.Active}}- {{.Name}} ({{.Client}}) {{.Status}}, due {{dueDate .DueDate}}
{{else}}No active projects
{{end}}
=== Completed This Month ({{len .ProjectStatus.Completed}}) ===
{{range .ProjectStatus.Completed}}- {{.Name}} ({{.Client}}) on {{date .CompletedDate}}
{{else}}No projects completed this month
{{end}}{{end}}{{else}}{{with .Weekly}}
=== This Week's Performance ===
{{separator}}
{{row "Task Completion" (percent .Metrics.TaskCompletion)}}
{{row "Tasks Completed" .Metrics.TasksCompleted}}
{{row "Active Tasks" .Metrics.ActiveTasks}}
{{row "Overdue Tasks" .Metrics.OverdueTasks}}
{{row "New Tasks This Week" .Metrics.NewTasksThisWeek}}
{{row "Team Hours (7 days)" .Metrics.TeamHours}}
{{row "Time Entries" .TeamActivity.EntriesCount}}
{{row "Hours Logged" (hours .TeamActivity.TotalHoursLogged)}}
{{separator}}
{{end}}{{end}}
=== {{if .Monthly}}Recent Milestones{{else}}Recent Activity{{end}} ===
{{range .Activity}}- {{date .Date}}  {{.Description}}
{{else}}No recent activity
{{end}}`

type textRenderer struct {
	tmpl *template.Template
}

// NewTextRenderer renders the plain-text alternative body, also used for
// console output.
func NewTextRenderer(config TableConfig) (Renderer, error) {
	fm := template.FuncMap(funcs())
	fm["row"] = func(label string, value any) string {
		return fmt.Sprintf("| %-*s | %*v |", config.LabelWidth, label, config.ValueWidth, value)
	}
	fm["separator"] = func() string {
		return fmt.Sprintf("+%s+%s+",
			strings.Repeat("-", config.LabelWidth+2),
			strings.Repeat("-", config.ValueWidth+2))
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(textTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &textRenderer{tmpl: tmpl}, nil
}

func (r *textRenderer) RenderWeekly(report *domain.WeeklyReport) (string, error) {
	if report == nil {
		return "", &RenderError{Stage: "execute", Err: errNilDocument}
	}
	return r.execute(weeklyView(report))
}

func (r *textRenderer) RenderMonthly(report *domain.MonthlyReport) (string, error) {
	if report == nil {
		return "", &RenderError{Stage: "execute", Err: errNilDocument}
	}
	return r.execute(monthlyView(report))
}

func (r *textRenderer) execute(v view) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", &RenderError{Stage: "execute", Err: err}
	}
	return buf.String(), nil
}
