package metrics

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/clocksynk/dashboard/pkg/models/domain"
)

// boardWindow is the look-back used for the team-hours board metric.
const boardWindow = 7 * 24 * time.Hour

// Snapshot is the set of collections read once for a single report generation.
type Snapshot struct {
	Tasks       []domain.Task
	TimeEntries []domain.TimeEntry
	Projects    []domain.ClientProject
	Ideas       []domain.Idea
	Activity    []domain.ActivityEvent
	Financials  domain.Financials
}

type Metrics struct {
	TaskCompletion   int
	TasksCompleted   int
	ActiveTasks      int
	OverdueTasks     int
	TeamHours        int
	NewTasksInWindow int

	TotalHoursLogged float64
	EntriesCount     int

	ActiveProjects    []domain.ClientProject
	CompletedProjects []domain.ClientProject
	IdeasSubmitted    int

	Financials domain.Financials
}

// Aggregate derives report statistics from snapshot over window. The window
// end doubles as "now" for the rolling team-hours figure.
func Aggregate(snapshot Snapshot, window domain.Window) Metrics {
	m := Metrics{
		IdeasSubmitted: len(snapshot.Ideas),
		Financials:     snapshot.Financials,
	}

	for _, t := range snapshot.Tasks {
		switch t.Status {
		case domain.TaskStatusDone:
			m.TasksCompleted++
		case domain.TaskStatusInProgress:
			m.ActiveTasks++
		case domain.TaskStatusOverdue:
			m.OverdueTasks++
		}
		if window.Contains(t.CreatedAt) {
			m.NewTasksInWindow++
		}
	}
	m.TaskCompletion = completion(m.TasksCompleted, len(snapshot.Tasks))

	board := domain.Window{Start: window.End.Add(-boardWindow), End: window.End}
	var worked time.Duration
	for _, e := range snapshot.TimeEntries {
		if window.Contains(e.EffectiveDate()) {
			m.EntriesCount++
			m.TotalHoursLogged += ParseHours(e.TotalHours)
		}
		if e.ClockOut != nil && board.Contains(e.ClockIn) && e.ClockOut.After(e.ClockIn) {
			worked += e.ClockOut.Sub(e.ClockIn)
		}
	}
	m.TeamHours = int(math.Round(worked.Hours()))

	m.ActiveProjects = make([]domain.ClientProject, 0)
	m.CompletedProjects = make([]domain.ClientProject, 0)
	for _, p := range snapshot.Projects {
		switch {
		case p.Status == domain.ProjectStatusInProgress || p.Status == domain.ProjectStatusPlanning:
			m.ActiveProjects = append(m.ActiveProjects, p)
		case p.Status == domain.ProjectStatusCompleted && window.Contains(p.UpdatedAt):
			m.CompletedProjects = append(m.CompletedProjects, p)
		}
	}

	return m
}

func completion(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// hoursPrefix matches the leading decimal number of a logged-hours value.
var hoursPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseHours reads the longest numeric prefix of a logged-hours value, so
// "7:30" is 7 and "3.5h" is 3.5. No prefix, NaN and infinities yield 0.
func ParseHours(raw string) float64 {
	num := hoursPrefix.FindString(strings.TrimLeft(raw, " \t\n\r\v\f"))
	if num == "" {
		return 0
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
