package calendar

import (
	"context"
	"log/slog"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
	"kpiboard/internal/platform/localcache"
)

// Source interfaces consumed by the calendar. The pgx stores implement them
// for the remote database; localcache.Store implements them for the local
// fallback. The calendar never reaches into ambient storage.

type ReportSource interface {
	GetReportTypes(ctx context.Context) ([]reports.ReportType, error)
	GetReports(ctx context.Context) ([]reports.Report, error)
}

type ScorecardSource interface {
	GetScorecards(ctx context.Context) ([]scorecard.Scorecard, error)
	GetScorecardAssignments(ctx context.Context) ([]scorecard.Assignment, error)
	GetScorecardResults(ctx context.Context) ([]scorecard.Result, error)
}

type DirectorySource interface {
	GetUsers(ctx context.Context) ([]directory.User, error)
	GetDepartments(ctx context.Context) ([]directory.Department, error)
}

// Snapshot is one immutable view of every input collection, fetched before
// any derivation runs so the engines never see partial updates.
type Snapshot struct {
	ReportTypes []reports.ReportType
	Reports     []reports.Report
	Scorecards  []scorecard.Scorecard
	Assignments []scorecard.Assignment
	Results     []scorecard.Result
	Users       []directory.User
	Departments []directory.Department
}

type Sources struct {
	Reports    ReportSource
	Scorecards ScorecardSource
	Directory  DirectorySource
}

// Loader fetches a snapshot from the primary sources, refreshing the local
// cache on success and falling back to it per collection on failure. A fetch
// failure never aborts the load; the failed collection degrades to empty and
// the calendar renders fewer items.
type Loader struct {
	Primary Sources
	Cache   *localcache.Store
}

func (l Loader) Load(ctx context.Context) Snapshot {
	var snap Snapshot

	if l.Primary.Reports != nil {
		if items, err := l.Primary.Reports.GetReportTypes(ctx); err != nil {
			fetchFailed("report_types", err)
		} else {
			snap.ReportTypes = items
			if l.Cache != nil {
				l.Cache.PutReportTypes(items)
			}
		}
		if items, err := l.Primary.Reports.GetReports(ctx); err != nil {
			fetchFailed("reports", err)
		} else {
			snap.Reports = items
			if l.Cache != nil {
				l.Cache.PutReports(items)
			}
		}
	}

	if l.Primary.Scorecards != nil {
		if items, err := l.Primary.Scorecards.GetScorecards(ctx); err != nil {
			fetchFailed("scorecards", err)
		} else {
			snap.Scorecards = items
			if l.Cache != nil {
				l.Cache.PutScorecards(items)
			}
		}
		if items, err := l.Primary.Scorecards.GetScorecardAssignments(ctx); err != nil {
			fetchFailed("scorecard_assignments", err)
		} else {
			snap.Assignments = items
			if l.Cache != nil {
				l.Cache.PutScorecardAssignments(items)
			}
		}
		if items, err := l.Primary.Scorecards.GetScorecardResults(ctx); err != nil {
			fetchFailed("scorecard_results", err)
		} else {
			snap.Results = items
			if l.Cache != nil {
				l.Cache.PutScorecardResults(items)
			}
		}
	}

	if l.Primary.Directory != nil {
		if items, err := l.Primary.Directory.GetUsers(ctx); err != nil {
			fetchFailed("users", err)
		} else {
			snap.Users = items
			if l.Cache != nil {
				l.Cache.PutUsers(items)
			}
		}
		if items, err := l.Primary.Directory.GetDepartments(ctx); err != nil {
			fetchFailed("departments", err)
		} else {
			snap.Departments = items
			if l.Cache != nil {
				l.Cache.PutDepartments(items)
			}
		}
	}

	l.fillFromCache(ctx, &snap)
	return snap
}

// fillFromCache backfills any collection the remote fetch left empty with
// the last cached copy.
func (l Loader) fillFromCache(ctx context.Context, snap *Snapshot) {
	if l.Cache == nil {
		return
	}
	if snap.ReportTypes == nil {
		snap.ReportTypes, _ = l.Cache.GetReportTypes(ctx)
	}
	if snap.Reports == nil {
		snap.Reports, _ = l.Cache.GetReports(ctx)
	}
	if snap.Scorecards == nil {
		snap.Scorecards, _ = l.Cache.GetScorecards(ctx)
	}
	if snap.Assignments == nil {
		snap.Assignments, _ = l.Cache.GetScorecardAssignments(ctx)
	}
	if snap.Results == nil {
		snap.Results, _ = l.Cache.GetScorecardResults(ctx)
	}
	if snap.Users == nil {
		snap.Users, _ = l.Cache.GetUsers(ctx)
	}
	if snap.Departments == nil {
		snap.Departments, _ = l.Cache.GetDepartments(ctx)
	}
}

func fetchFailed(collection string, err error) {
	slog.Warn("remote fetch failed, falling back to local cache", "collection", collection, "err", err)
}
