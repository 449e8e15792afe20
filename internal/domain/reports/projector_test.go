package reports

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectDueDatesMonthlyOnePerMonth(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyMonthly}
	last := &Report{ReportTypeID: "rt1", Date: date(2025, time.January, 15)}
	now := date(2025, time.January, 20)

	due := ProjectDueDates(rt, last, now, DefaultHorizon(now))
	if len(due) != 3 {
		t.Fatalf("expected 3 monthly due dates, got %d: %v", len(due), due)
	}
	for i, d := range due {
		if d.Day() != 15 {
			t.Fatalf("expected day 15, got %v", d)
		}
		if want := time.Month(int(time.February) + i); d.Month() != want {
			t.Fatalf("expected month %v at index %d, got %v", want, i, d)
		}
	}
}

func TestProjectDueDatesNeverEmitsPastDates(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyWeekly}
	last := &Report{ReportTypeID: "rt1", Date: date(2025, time.January, 1)}
	now := date(2025, time.February, 1)

	for _, d := range ProjectDueDates(rt, last, now, DefaultHorizon(now)) {
		if !d.After(now) {
			t.Fatalf("emitted date %v is not after now %v", d, now)
		}
	}
}

func TestProjectDueDatesAscending(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyDaily}
	now := date(2025, time.March, 1)

	due := ProjectDueDates(rt, nil, now, now.AddDate(0, 0, 10))
	if len(due) != 10 {
		t.Fatalf("expected 10 daily dates, got %d", len(due))
	}
	for i := 1; i < len(due); i++ {
		if !due[i].After(due[i-1]) {
			t.Fatalf("dates not ascending at index %d: %v", i, due)
		}
	}
}

func TestProjectDueDatesNilSubmissionAnchorsOnNow(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyDaily}
	now := date(2025, time.March, 1)

	due := ProjectDueDates(rt, nil, now, now.AddDate(0, 0, 3))
	if len(due) == 0 {
		t.Fatal("expected at least one due date")
	}
	if !due[0].Equal(date(2025, time.March, 2)) {
		t.Fatalf("expected first occurrence the day after now, got %v", due[0])
	}
}

func TestProjectDueDatesRespectsHorizon(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyQuarterly}
	last := &Report{ReportTypeID: "rt1", Date: date(2025, time.January, 10)}
	now := date(2025, time.January, 20)

	due := ProjectDueDates(rt, last, now, DefaultHorizon(now))
	if len(due) != 1 {
		t.Fatalf("expected a single quarterly date within three months, got %v", due)
	}
	if !due[0].Equal(date(2025, time.April, 10)) {
		t.Fatalf("expected 2025-04-10, got %v", due[0])
	}
}

func TestAdvanceUnknownFrequencyFallsBackToDaily(t *testing.T) {
	start := date(2025, time.May, 1)
	next := Advance(start, "biweekly")
	if !next.Equal(date(2025, time.May, 2)) {
		t.Fatalf("expected +1 day fallback for unknown frequency, got %v", next)
	}
}

func TestAdvanceMonthlyClampsMonthEnd(t *testing.T) {
	next := Advance(date(2025, time.January, 31), FrequencyMonthly)
	if !next.Equal(date(2025, time.February, 28)) {
		t.Fatalf("expected clamp to Feb 28, got %v", next)
	}

	next = Advance(date(2024, time.January, 31), FrequencyMonthly)
	if !next.Equal(date(2024, time.February, 29)) {
		t.Fatalf("expected leap-year clamp to Feb 29, got %v", next)
	}
}

func TestProjectDueDatesMonthEndAnchorKeepsDay(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyMonthly}
	last := &Report{ReportTypeID: "rt1", Date: date(2025, time.January, 31)}
	now := date(2025, time.January, 31)

	due := ProjectDueDates(rt, last, now, date(2025, time.May, 1))
	want := []time.Time{
		date(2025, time.February, 28),
		date(2025, time.March, 31),
		date(2025, time.April, 30),
	}
	if len(due) != len(want) {
		t.Fatalf("expected %d due dates, got %d: %v", len(want), len(due), due)
	}
	for i := range want {
		if !due[i].Equal(want[i]) {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], due[i])
		}
	}
}

func TestProjectDueDatesQuarterlyMonthEndAnchorKeepsDay(t *testing.T) {
	rt := ReportType{ID: "rt1", Frequency: FrequencyQuarterly}
	last := &Report{ReportTypeID: "rt1", Date: date(2024, time.November, 30)}
	now := date(2024, time.December, 1)

	due := ProjectDueDates(rt, last, now, date(2025, time.September, 1))
	want := []time.Time{
		date(2025, time.February, 28),
		date(2025, time.May, 30),
		date(2025, time.August, 30),
	}
	if len(due) != len(want) {
		t.Fatalf("expected %d due dates, got %d: %v", len(want), len(due), due)
	}
	for i := range want {
		if !due[i].Equal(want[i]) {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], due[i])
		}
	}
}

func TestAdvanceAnnually(t *testing.T) {
	next := Advance(date(2025, time.June, 30), FrequencyAnnually)
	if !next.Equal(date(2026, time.June, 30)) {
		t.Fatalf("expected 2026-06-30, got %v", next)
	}
}

func TestLatestReportFor(t *testing.T) {
	submissions := []Report{
		{ID: "r1", ReportTypeID: "rt1", Date: date(2025, time.January, 5)},
		{ID: "r2", ReportTypeID: "rt1", Date: date(2025, time.February, 5)},
		{ID: "r3", ReportTypeID: "rt2", Date: date(2025, time.March, 5)},
	}

	latest := LatestReportFor(submissions, "rt1")
	if latest == nil || latest.ID != "r2" {
		t.Fatalf("expected r2, got %+v", latest)
	}
	if LatestReportFor(submissions, "rt9") != nil {
		t.Fatal("expected nil for unknown report type")
	}
}
