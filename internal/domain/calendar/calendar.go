package calendar

import (
	"sort"
	"time"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
)

// Event is one calendar day-cell entry: a submitted report, a projected
// report due date, or a scorecard lifecycle task.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Department string    `json:"department"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	Assigned   string    `json:"assigned,omitempty"`
}

const (
	EventTypeReport  = "report"
	EventTypePlanned = "planned_report"
)

type Month struct {
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Events []Event `json:"events"`
}

// BuildMonth assembles everything shown for one displayed month: submitted
// reports, projected due dates for recurring report types, and scorecard
// tasks. Planned entries are suppressed wherever a submission already exists
// for the same (reportTypeId, date); tasks are deduplicated by their
// deterministic ids inside the derivation engine. A zero horizonEnd uses the
// default three-month planning window.
func BuildMonth(snap Snapshot, viewer *directory.User, month, year int, now, horizonEnd time.Time) Month {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	horizon := horizonEnd
	if horizon.IsZero() {
		horizon = reports.DefaultHorizon(now)
	}

	var events []Event
	taken := make(map[string]struct{})

	for _, r := range snap.Reports {
		taken[plannedKey(r.ReportTypeID, r.Date)] = struct{}{}
		if inWindow(r.Date, start, end) {
			events = append(events, Event{
				ID:         r.ID,
				Title:      reportTitle(snap.ReportTypes, r.ReportTypeID),
				Department: r.Department,
				Date:       r.Date,
				Status:     r.Status,
				Type:       EventTypeReport,
			})
		}
	}

	for _, rt := range snap.ReportTypes {
		last := reports.LatestReportFor(snap.Reports, rt.ID)
		for _, due := range reports.ProjectDueDates(rt, last, now, horizon) {
			key := plannedKey(rt.ID, due)
			if _, ok := taken[key]; ok {
				continue
			}
			taken[key] = struct{}{}
			if !inWindow(due, start, end) {
				continue
			}
			events = append(events, Event{
				ID:         "planned_" + key,
				Title:      rt.Name,
				Department: rt.Department,
				Date:       due,
				Status:     reports.StatusPlanned,
				Type:       EventTypePlanned,
			})
		}
	}

	tasks := scorecard.DeriveTasksForMonth(scorecard.TaskInputs{
		Scorecards:  snap.Scorecards,
		Users:       snap.Users,
		Departments: snap.Departments,
		Assignments: snap.Assignments,
		Results:     snap.Results,
		Month:       month,
		Year:        year,
		Now:         now,
		Viewer:      viewer,
	})
	for _, task := range tasks {
		events = append(events, Event{
			ID:         task.ID,
			Title:      task.Title,
			Department: task.Department,
			Date:       task.Date,
			Status:     task.Status,
			Type:       task.Type,
			Assigned:   task.Assigned,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})

	return Month{Month: month, Year: year, Events: events}
}

func plannedKey(reportTypeID string, date time.Time) string {
	return reportTypeID + "_" + date.Format("2006-01-02")
}

func inWindow(date, start, end time.Time) bool {
	return !date.Before(start) && date.Before(end)
}

func reportTitle(types []reports.ReportType, reportTypeID string) string {
	for i := range types {
		if types[i].ID == reportTypeID {
			return types[i].Name
		}
	}
	return "Report"
}
