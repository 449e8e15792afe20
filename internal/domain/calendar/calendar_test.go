package calendar

import (
	"testing"
	"time"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		ReportTypes: []reports.ReportType{
			{ID: "rt1", Name: "Weekly Sales Report", Department: "Sales", Frequency: reports.FrequencyWeekly},
		},
		Reports: []reports.Report{
			{ID: "r1", ReportTypeID: "rt1", Department: "Sales", Date: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), Status: reports.StatusSubmitted},
		},
		Scorecards: []scorecard.Scorecard{
			{ID: "s1", Name: "Sales KPIs", Department: "Sales", ResponsiblePerson: "John Doe"},
		},
		Users: []directory.User{
			{ID: "u1", Name: "John Doe", Role: directory.RoleUser, Department: "Sales"},
		},
		Departments: []directory.Department{
			{ID: "d1", Name: "Sales", Manager: "Jane Smith"},
			{ID: "d2", Name: "HR", Manager: "Pat Lee"},
		},
	}
}

func TestBuildMonthMergesReportsPlannedAndTasks(t *testing.T) {
	now := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	month := BuildMonth(snapshotFixture(), nil, 6, 2025, now, time.Time{})

	var submitted, planned, tasks int
	for _, event := range month.Events {
		switch event.Type {
		case EventTypeReport:
			submitted++
		case EventTypePlanned:
			planned++
		default:
			tasks++
		}
	}
	if submitted != 1 {
		t.Fatalf("expected 1 submitted report, got %d", submitted)
	}
	// Weekly projection anchored on June 2: June 9, 16, 23, 30 fall in the
	// displayed month.
	if planned != 4 {
		t.Fatalf("expected 4 planned events, got %d: %+v", planned, month.Events)
	}
	if tasks != 3 {
		t.Fatalf("expected 3 scorecard tasks, got %d", tasks)
	}
}

func TestBuildMonthSuppressesPlannedOverSubmitted(t *testing.T) {
	snap := snapshotFixture()
	snap.Reports = append(snap.Reports, reports.Report{
		ID: "r2", ReportTypeID: "rt1", Department: "Sales",
		Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), Status: reports.StatusSubmitted,
	})
	now := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	month := BuildMonth(snap, nil, 6, 2025, now, time.Time{})
	for _, event := range month.Events {
		if event.Type == EventTypePlanned && event.Date.Equal(time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("planned event must be suppressed by submission on the same date: %+v", event)
		}
	}
}

func TestBuildMonthEventsSortedAndStableAcrossCalls(t *testing.T) {
	snap := snapshotFixture()
	now := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	first := BuildMonth(snap, nil, 6, 2025, now, time.Time{})
	second := BuildMonth(snap, nil, 6, 2025, now, time.Time{})
	if len(first.Events) != len(second.Events) {
		t.Fatalf("event counts differ: %d vs %d", len(first.Events), len(second.Events))
	}
	for i := range first.Events {
		if first.Events[i].ID != second.Events[i].ID {
			t.Fatalf("event order unstable at %d: %q vs %q", i, first.Events[i].ID, second.Events[i].ID)
		}
		if i > 0 && first.Events[i].Date.Before(first.Events[i-1].Date) {
			t.Fatalf("events not sorted by date at %d", i)
		}
	}
}

func TestBuildMonthExcludesOtherMonths(t *testing.T) {
	snap := snapshotFixture()
	now := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	month := BuildMonth(snap, nil, 7, 2025, now, time.Time{})
	for _, event := range month.Events {
		if event.Type == EventTypeReport {
			t.Fatalf("June submission must not appear in July: %+v", event)
		}
		if int(event.Date.Month()) != 7 && event.Type == EventTypePlanned {
			t.Fatalf("planned event outside July: %+v", event)
		}
	}
}
