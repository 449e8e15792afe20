package reports

import "time"

// Advance returns the next due date after t for the given frequency.
// Unrecognized frequency strings advance by a single day: legacy report types
// carry free-text frequencies, and treating them as daily keeps the
// projection moving instead of stalling.
func Advance(t time.Time, frequency string) time.Time {
	switch frequency {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonths(t, 1)
	case FrequencyQuarterly:
		return addMonths(t, 3)
	case FrequencyAnnually:
		return addMonths(t, 12)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// addMonths adds whole calendar months, clamping the day to the last valid
// day of the target month so a month-end anchor stays one emission per month
// (Jan 31 -> Feb 28, not Mar 3).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	first := time.Date(year, month+time.Month(months), 1, hour, minute, second, t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, second, t.Nanosecond(), t.Location())
}

// nthDueDate is the k-th emission after the anchor. Month-based frequencies
// count months from the anchor itself rather than from the previous emission,
// so a month-end anchor clamps per emission (Jan 31 -> Feb 28, Mar 31, Apr 30)
// instead of drifting to the shortest month's day for good.
func nthDueDate(anchor time.Time, k int, frequency string) time.Time {
	switch frequency {
	case FrequencyDaily:
		return anchor.AddDate(0, 0, k)
	case FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*k)
	case FrequencyMonthly:
		return addMonths(anchor, k)
	case FrequencyQuarterly:
		return addMonths(anchor, 3*k)
	case FrequencyAnnually:
		return addMonths(anchor, 12*k)
	default:
		return anchor.AddDate(0, 0, k)
	}
}

// DefaultHorizon is the planning window used by the calendar.
func DefaultHorizon(now time.Time) time.Time {
	return now.AddDate(0, 3, 0)
}

// ProjectDueDates returns the future due dates for one recurring report type,
// ascending, all within (now, horizonEnd]. The projection is anchored on the
// most recent actual submission when one exists, otherwise on now; the
// anchor's day-of-month is retained across month-based emissions.
// De-duplication against already-submitted reports is the caller's job, keyed
// by (reportTypeId, ISO date).
func ProjectDueDates(rt ReportType, lastSubmission *Report, now, horizonEnd time.Time) []time.Time {
	anchor := now
	if lastSubmission != nil {
		anchor = lastSubmission.Date
	}

	var due []time.Time
	for k := 1; ; k++ {
		next := nthDueDate(anchor, k, rt.Frequency)
		if next.After(horizonEnd) {
			break
		}
		if next.After(now) {
			due = append(due, next)
		}
	}
	return due
}

// LatestReportFor returns the most recent submission for a report type, or
// nil when none exists.
func LatestReportFor(submissions []Report, reportTypeID string) *Report {
	var latest *Report
	for i := range submissions {
		if submissions[i].ReportTypeID != reportTypeID {
			continue
		}
		if latest == nil || submissions[i].Date.After(latest.Date) {
			latest = &submissions[i]
		}
	}
	return latest
}
