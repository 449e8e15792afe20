package calendarhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"kpiboard/internal/auth"
	"kpiboard/internal/domain/calendar"
	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/domain/scorecard"
	"kpiboard/internal/transport/http/middleware"
)

type fakeReportSource struct {
	types       []reports.ReportType
	submissions []reports.Report
}

func (f fakeReportSource) GetReportTypes(context.Context) ([]reports.ReportType, error) {
	return f.types, nil
}

func (f fakeReportSource) GetReports(context.Context) ([]reports.Report, error) {
	return f.submissions, nil
}

type fakeScorecardSource struct{}

func (fakeScorecardSource) GetScorecards(context.Context) ([]scorecard.Scorecard, error) {
	return nil, nil
}

func (fakeScorecardSource) GetScorecardAssignments(context.Context) ([]scorecard.Assignment, error) {
	return nil, nil
}

func (fakeScorecardSource) GetScorecardResults(context.Context) ([]scorecard.Result, error) {
	return nil, nil
}

type fakeDirectorySource struct {
	users []directory.User
}

func (f fakeDirectorySource) GetUsers(context.Context) ([]directory.User, error) {
	return f.users, nil
}

func (f fakeDirectorySource) GetDepartments(context.Context) ([]directory.Department, error) {
	return nil, nil
}

const testSecret = "calendar-handler-test-secret"

func newRouter(t *testing.T, loader calendar.Loader) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	NewHandler(loader, 3).RegisterRoutes(router)
	return router
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		UserID:     "u1",
		Name:       "Jane Admin",
		Role:       directory.RoleAdmin,
		Department: "Finance",
	}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func TestCalendarMonthMergesSubmissionsAndProjections(t *testing.T) {
	// Projections only cover dates after the present, so the displayed month
	// has to sit ahead of the clock for planned entries to show up.
	target := time.Now().UTC().AddDate(0, 1, 0)
	month, year := int(target.Month()), target.Year()
	submitted := time.Date(year, target.Month(), 1, 0, 0, 0, 0, time.UTC)

	loader := calendar.Loader{
		Primary: calendar.Sources{
			Reports: fakeReportSource{
				types: []reports.ReportType{
					{ID: "rt1", Name: "Cash Flow", Department: "Finance", Frequency: reports.FrequencyWeekly},
				},
				submissions: []reports.Report{
					{ID: "r1", ReportTypeID: "rt1", Department: "Finance", Date: submitted, Status: reports.StatusSubmitted},
				},
			},
			Scorecards: fakeScorecardSource{},
			Directory:  fakeDirectorySource{users: []directory.User{{ID: "u1", Name: "Jane Admin", Role: directory.RoleAdmin, Department: "Finance"}}},
		},
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/calendar?month=%d&year=%d", month, year), nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	newRouter(t, loader).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Month  int              `json:"month"`
			Year   int              `json:"year"`
			Events []calendar.Event `json:"events"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("success = false, body %s", rec.Body.String())
	}
	if envelope.Data.Month != month || envelope.Data.Year != year {
		t.Fatalf("period = %d/%d, want %d/%d", envelope.Data.Month, envelope.Data.Year, month, year)
	}

	var haveSubmitted, havePlanned bool
	for _, event := range envelope.Data.Events {
		if event.ID == "r1" && event.Status == reports.StatusSubmitted {
			haveSubmitted = true
		}
		if event.Type == calendar.EventTypePlanned {
			havePlanned = true
		}
	}
	if !haveSubmitted {
		t.Errorf("submitted report missing from events: %+v", envelope.Data.Events)
	}
	if !havePlanned {
		t.Errorf("no planned events projected for a weekly report type: %+v", envelope.Data.Events)
	}
}

func TestCalendarRequiresAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/calendar", nil)
	rec := httptest.NewRecorder()
	newRouter(t, calendar.Loader{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCalendarRejectsBadPeriod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/calendar?month=13&year=2025", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	newRouter(t, calendar.Loader{
		Primary: calendar.Sources{Reports: fakeReportSource{}, Scorecards: fakeScorecardSource{}, Directory: fakeDirectorySource{}},
	}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestViewerFromSnapshotPrefersStoredUser(t *testing.T) {
	snap := calendar.Snapshot{
		Users: []directory.User{
			{ID: "u1", Name: "Jane Admin", Departments: []string{"Finance", "HR"}},
		},
	}
	session := middleware.UserContext{UserID: "u1", Name: "Jane Admin", Role: directory.RoleAdmin}

	viewer := viewerFromSnapshot(snap, session)
	if len(viewer.Departments) != 2 {
		t.Fatalf("expected the stored record with both departments, got %+v", viewer)
	}

	viewer = viewerFromSnapshot(calendar.Snapshot{}, session)
	if viewer.ID != "u1" || viewer.Name != "Jane Admin" {
		t.Fatalf("expected a claims-built fallback, got %+v", viewer)
	}
}
