package calendarhandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kpiboard/internal/domain/calendar"
	"kpiboard/internal/domain/directory"
	"kpiboard/internal/transport/http/api"
	"kpiboard/internal/transport/http/middleware"
)

type Handler struct {
	Loader        calendar.Loader
	HorizonMonths int
}

func NewHandler(loader calendar.Loader, horizonMonths int) *Handler {
	return &Handler{Loader: loader, HorizonMonths: horizonMonths}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/calendar", h.handleMonth)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	month, year := int(now.Month()), now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12", middleware.GetRequestID(r.Context()))
			return
		}
		month = v
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 2000 || v > 2200 {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "year must be a four digit year", middleware.GetRequestID(r.Context()))
			return
		}
		year = v
	}

	snap := h.Loader.Load(r.Context())

	viewer := viewerFromSnapshot(snap, session)

	var horizonEnd time.Time
	if h.HorizonMonths > 0 {
		horizonEnd = now.AddDate(0, h.HorizonMonths, 0)
	}

	result := calendar.BuildMonth(snap, viewer, month, year, now, horizonEnd)
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

// viewerFromSnapshot prefers the stored user record so task scoping sees the
// full department memberships. The token claims are enough when the snapshot
// degraded to an empty user list.
func viewerFromSnapshot(snap calendar.Snapshot, session middleware.UserContext) *directory.User {
	for i := range snap.Users {
		if snap.Users[i].ID == session.UserID {
			return &snap.Users[i]
		}
	}
	return &directory.User{
		ID:         session.UserID,
		Name:       session.Name,
		Role:       session.Role,
		Department: session.Department,
	}
}
