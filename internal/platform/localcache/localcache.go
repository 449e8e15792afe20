package localcache

import (
	"context"
	"slices"
	"sync"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
)

// Store is the local data source. It holds the last successfully fetched
// copy of each collection so the dashboard keeps rendering when the remote
// database is unreachable, and it doubles as the standalone backing store in
// demo deployments. It satisfies the same source interfaces as the pgx
// stores; the composition root decides which one feeds the calendar.
type Store struct {
	mu          sync.RWMutex
	reportTypes []reports.ReportType
	submissions []reports.Report
	scorecards  []scorecard.Scorecard
	assignments []scorecard.Assignment
	results     []scorecard.Result
	users       []directory.User
	departments []directory.Department
}

func New() *Store {
	return &Store{}
}

func (s *Store) GetReportTypes(_ context.Context) ([]reports.ReportType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reportTypes), nil
}

func (s *Store) GetReports(_ context.Context) ([]reports.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.submissions), nil
}

func (s *Store) GetScorecards(_ context.Context) ([]scorecard.Scorecard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.scorecards), nil
}

func (s *Store) GetScorecardAssignments(_ context.Context) ([]scorecard.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.assignments), nil
}

func (s *Store) GetScorecardResults(_ context.Context) ([]scorecard.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results), nil
}

func (s *Store) GetUsers(_ context.Context) ([]directory.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *Store) GetDepartments(_ context.Context) ([]directory.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.departments), nil
}

func (s *Store) PutReportTypes(items []reports.ReportType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportTypes = slices.Clone(items)
}

func (s *Store) PutReports(items []reports.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = slices.Clone(items)
}

func (s *Store) PutScorecards(items []scorecard.Scorecard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scorecards = slices.Clone(items)
}

func (s *Store) PutScorecardAssignments(items []scorecard.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = slices.Clone(items)
}

func (s *Store) PutScorecardResults(items []scorecard.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = slices.Clone(items)
}

func (s *Store) PutUsers(items []directory.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = slices.Clone(items)
}

func (s *Store) PutDepartments(items []directory.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments = slices.Clone(items)
}
