package render

import (
	"fmt"
	"io"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	activitySheet = "Activity"
	projectsSheet = "Projects"
)

type XLSXExporter interface {
	ExportWeekly(w io.Writer, report *domain.WeeklyReport) error
	ExportMonthly(w io.Writer, report *domain.MonthlyReport) error
}

type xlsxExporter struct{}

func NewXLSXExporter() XLSXExporter {
	return xlsxExporter{}
}

func (x xlsxExporter) ExportWeekly(w io.Writer, report *domain.WeeklyReport) error {
	if report == nil {
		return &RenderError{Stage: "export", Err: errNilDocument}
	}

	m := report.Metrics
	summary := [][]any{
		{"Task Completion (%)", m.TaskCompletion},
		{"Tasks Completed", m.TasksCompleted},
		{"Active Tasks", m.ActiveTasks},
		{"Overdue Tasks", m.OverdueTasks},
		{"Team Hours (7 days)", m.TeamHours},
		{"New Tasks This Week", m.NewTasksThisWeek},
		{"Hours Logged", report.TeamActivity.TotalHoursLogged},
		{"Time Entries", report.TeamActivity.EntriesCount},
	}
	return x.write(w, report.Title, report.Period, summary, report.Highlights, nil)
}

func (x xlsxExporter) ExportMonthly(w io.Writer, report *domain.MonthlyReport) error {
	if report == nil {
		return &RenderError{Stage: "export", Err: errNilDocument}
	}

	es, tp := report.ExecutiveSummary, report.TeamPerformance
	summary := [][]any{
		{"Task Completion (%)", es.TaskCompletion},
		{"Active Projects", es.ActiveProjects},
		{"Completed Projects", es.CompletedProjects},
		{"Revenue", es.Revenue},
		{"Expenses", es.Expenses},
		{"Burn Rate", es.BurnRate},
		{"Runway (months)", es.Runway},
		{"Tasks Completed", tp.TasksCompleted},
		{"Active Tasks", tp.ActiveTasks},
		{"Overdue Tasks", tp.OverdueTasks},
		{"New Tasks This Month", tp.NewTasksThisMonth},
		{"Hours Logged", tp.TotalHoursLogged},
		{"Ideas Submitted", tp.IdeasSubmitted},
	}

	projects := [][]any{{"Project", "Client", "Status", "Due / Completed"}}
	for _, p := range report.ProjectStatus.Active {
		projects = append(projects, []any{p.Name, p.Client, string(p.Status), DueDate(p.DueDate)})
	}
	for _, p := range report.ProjectStatus.Completed {
		projects = append(projects, []any{p.Name, p.Client, string(domain.ProjectStatusCompleted), Date(p.CompletedDate)})
	}

	return x.write(w, report.Title, report.Period, summary, report.RecentMilestones, projects)
}

func (x xlsxExporter) write(
	w io.Writer,
	title, period string,
	summary [][]any,
	activity []domain.ActivityEvent,
	projects [][]any,
) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &RenderError{Stage: "export", Err: cerr}
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return &RenderError{Stage: "export", Err: err}
	}

	rows := append([][]any{{title}, {period}, {}}, summary...)
	if err := setRows(f, summarySheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return &RenderError{Stage: "export", Err: err}
	}

	activityRows := [][]any{{"Date", "Type", "Description"}}
	for _, e := range activity {
		activityRows = append(activityRows, []any{Date(e.Date), string(e.Type), e.Description})
	}
	if _, err := f.NewSheet(activitySheet); err != nil {
		return &RenderError{Stage: "export", Err: err}
	}
	if err := setRows(f, activitySheet, activityRows); err != nil {
		return err
	}

	if projects != nil {
		if _, err := f.NewSheet(projectsSheet); err != nil {
			return &RenderError{Stage: "export", Err: err}
		}
		if err := setRows(f, projectsSheet, projects); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return &RenderError{Stage: "export", Err: fmt.Errorf("write workbook: %w", err)}
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return &RenderError{Stage: "export", Err: err}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return &RenderError{Stage: "export", Err: err}
		}
	}
	return nil
}
