package scorecardhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/scorecard"
	"kpiboard/internal/transport/http/api"
	"kpiboard/internal/transport/http/middleware"
	"kpiboard/internal/transport/http/shared"
)

type Handler struct {
	Store     *scorecard.Store
	Directory *directory.Store
}

func NewHandler(store *scorecard.Store, dir *directory.Store) *Handler {
	return &Handler{Store: store, Directory: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(directory.RoleAdmin, directory.RoleHRManager)

	r.Route("/scorecards", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(admin).Post("/", h.handleCreate)
		r.Get("/{scorecardID}", h.handleGet)
		r.With(admin).Put("/{scorecardID}", h.handleUpdate)
		r.With(admin).Delete("/{scorecardID}", h.handleDelete)
		r.Get("/{scorecardID}/permissions", h.handlePermissions)
		r.Get("/{scorecardID}/export", h.handleExport)
		r.Get("/{scorecardID}/results/{month}/{year}", h.handleGetResult)
		r.Put("/{scorecardID}/results/{month}/{year}", h.handleSaveDraft)
		r.Post("/{scorecardID}/results/{month}/{year}/submit", h.handleSubmit)
		r.Post("/{scorecardID}/results/{month}/{year}/approve", h.handleApprove)
	})
}

// viewer resolves the session user to a full directory record so permission
// checks see the multi-department membership, not just the token claims.
func (h *Handler) viewer(r *http.Request) (*directory.User, bool) {
	session, ok := middleware.GetUser(r.Context())
	if !ok {
		return nil, false
	}
	user, err := h.Directory.GetUserByID(r.Context(), session.UserID)
	if err != nil || user == nil {
		return &directory.User{
			ID:         session.UserID,
			Name:       session.Name,
			Role:       session.Role,
			Department: session.Department,
		}, true
	}
	return user, true
}

func (h *Handler) evaluator(r *http.Request) (scorecard.Evaluator, error) {
	departments, err := h.Directory.GetDepartments(r.Context())
	if err != nil {
		return scorecard.Evaluator{}, err
	}
	return scorecard.NewEvaluator(departments), nil
}

func parsePeriod(r *http.Request) (int, int, bool) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, false
	}
	return month, year, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	scorecards, err := h.Store.GetScorecards(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecards_list_failed", "failed to list scorecards", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, scorecards, middleware.GetRequestID(r.Context()))
}

type kpiRequest struct {
	Name   string  `json:"name"`
	Target float64 `json:"target"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

type scorecardRequest struct {
	Name              string       `json:"name"`
	Department        string       `json:"department"`
	ResponsiblePerson string       `json:"responsiblePerson"`
	KPIs              []kpiRequest `json:"kpis"`
}

func validateScorecard(v *shared.Validator, payload scorecardRequest) {
	v.Required("name", payload.Name, "name is required")
	v.Required("department", payload.Department, "department is required")
	for i, kpi := range payload.KPIs {
		field := "kpis[" + strconv.Itoa(i) + "]"
		v.Required(field+".name", kpi.Name, "kpi name is required")
		if kpi.Target < 0 {
			v.Add(field+".target", "target must not be negative")
		}
		if kpi.Weight < 0 {
			v.Add(field+".weight", "weight must not be negative")
		}
	}
}

func scorecardFromRequest(payload scorecardRequest) scorecard.Scorecard {
	sc := scorecard.Scorecard{
		Name:              strings.TrimSpace(payload.Name),
		Department:        strings.TrimSpace(payload.Department),
		ResponsiblePerson: strings.TrimSpace(payload.ResponsiblePerson),
	}
	for _, kpi := range payload.KPIs {
		sc.KPIs = append(sc.KPIs, scorecard.KPI{
			Name:   strings.TrimSpace(kpi.Name),
			Target: kpi.Target,
			Weight: kpi.Weight,
			Unit:   strings.TrimSpace(kpi.Unit),
		})
	}
	return sc
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload scorecardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateScorecard(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	sc := scorecardFromRequest(payload)
	if err := h.Store.CreateScorecard(r.Context(), &sc); err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecard_create_failed", "failed to create scorecard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, sc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	scorecardID := chi.URLParam(r, "scorecardID")

	var payload scorecardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateScorecard(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	sc := scorecardFromRequest(payload)
	sc.ID = scorecardID
	if err := h.Store.UpdateScorecard(r.Context(), &sc); err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecard_update_failed", "failed to update scorecard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	scorecardID := chi.URLParam(r, "scorecardID")
	if err := h.Store.DeleteScorecard(r.Context(), scorecardID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecard_delete_failed", "failed to delete scorecard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": scorecardID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePermissions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}
	eval, err := h.evaluator(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "permissions_failed", "failed to evaluate permissions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{
		"canEnter":   eval.CanEnter(*viewer, *sc),
		"canSubmit":  eval.CanSubmit(*viewer, *sc),
		"canApprove": eval.CanApprove(*viewer, *sc),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year a four digit year", middleware.GetRequestID(r.Context()))
		return
	}
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Store.GetResult(r.Context(), sc.ID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_fetch_failed", "failed to fetch result", middleware.GetRequestID(r.Context()))
		return
	}
	if result == nil {
		api.Success(w, map[string]any{"result": nil, "score": 0.0}, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"result": result,
		"score":  scorecard.ComputeScore(sc.KPIs, result.KPIValues),
	}, middleware.GetRequestID(r.Context()))
}

type draftRequest struct {
	KPIValues map[string]float64 `json:"kpiValues"`
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year a four digit year", middleware.GetRequestID(r.Context()))
		return
	}
	viewer, ok := h.viewer(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}
	eval, err := h.evaluator(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_save_failed", "failed to evaluate permissions", middleware.GetRequestID(r.Context()))
		return
	}
	if !eval.CanEnter(*viewer, *sc) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to enter results for this scorecard", middleware.GetRequestID(r.Context()))
		return
	}

	existing, err := h.Store.GetResult(r.Context(), sc.ID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_save_failed", "failed to fetch result", middleware.GetRequestID(r.Context()))
		return
	}
	if existing != nil && existing.Status != scorecard.ResultStatusDraft {
		api.Fail(w, http.StatusConflict, "result_locked", "result has already been "+existing.Status, middleware.GetRequestID(r.Context()))
		return
	}

	var payload draftRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.KPIValues == nil {
		payload.KPIValues = map[string]float64{}
	}

	result := scorecard.Result{
		ScorecardID: sc.ID,
		UserID:      viewer.ID,
		PeriodMonth: month,
		PeriodYear:  year,
		KPIValues:   payload.KPIValues,
	}
	if err := h.Store.SaveDraft(r.Context(), &result); err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_save_failed", "failed to save draft", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year a four digit year", middleware.GetRequestID(r.Context()))
		return
	}
	viewer, ok := h.viewer(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}
	eval, err := h.evaluator(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_submit_failed", "failed to evaluate permissions", middleware.GetRequestID(r.Context()))
		return
	}
	if !eval.CanSubmit(*viewer, *sc) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to submit results for this scorecard", middleware.GetRequestID(r.Context()))
		return
	}

	existing, err := h.Store.GetResult(r.Context(), sc.ID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_submit_failed", "failed to fetch result", middleware.GetRequestID(r.Context()))
		return
	}
	if existing == nil {
		api.Fail(w, http.StatusNotFound, "result_not_found", "no draft result to submit", middleware.GetRequestID(r.Context()))
		return
	}
	if existing.Status == scorecard.ResultStatusApproved {
		api.Fail(w, http.StatusConflict, "result_locked", "result has already been approved", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.SubmitResult(r.Context(), sc.ID, month, year); err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_submit_failed", "failed to submit result", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": scorecard.ResultStatusSubmitted}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year a four digit year", middleware.GetRequestID(r.Context()))
		return
	}
	viewer, ok := h.viewer(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}
	eval, err := h.evaluator(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_approve_failed", "failed to evaluate permissions", middleware.GetRequestID(r.Context()))
		return
	}
	if !eval.CanApprove(*viewer, *sc) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to approve results for this scorecard", middleware.GetRequestID(r.Context()))
		return
	}

	existing, err := h.Store.GetResult(r.Context(), sc.ID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_approve_failed", "failed to fetch result", middleware.GetRequestID(r.Context()))
		return
	}
	if existing == nil || existing.Status == scorecard.ResultStatusDraft {
		api.Fail(w, http.StatusConflict, "result_not_submitted", "result must be submitted before approval", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.ApproveResult(r.Context(), sc.ID, month, year, viewer.Name); err != nil {
		api.Fail(w, http.StatusInternalServerError, "result_approve_failed", "failed to approve result", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": scorecard.ResultStatusApproved}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	sc, err := h.Store.GetScorecard(r.Context(), chi.URLParam(r, "scorecardID"))
	if err != nil || sc == nil {
		api.Fail(w, http.StatusNotFound, "scorecard_not_found", "scorecard not found", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	month, year := int(now.Month()), now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 2000 && v <= 2200 {
			year = v
		}
	}

	result, err := h.Store.GetResult(r.Context(), sc.ID, month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to fetch result", middleware.GetRequestID(r.Context()))
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Scorecard Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Scorecard: %s", sc.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", sc.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %d/%d", month, year))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(80, 8, "KPI")
	pdf.Cell(30, 8, "Target")
	pdf.Cell(30, 8, "Weight")
	pdf.Cell(30, 8, "Actual")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, kpi := range sc.KPIs {
		actual := "-"
		if result != nil {
			if value, ok := result.KPIValues[kpi.ID]; ok {
				actual = fmt.Sprintf("%.2f", value)
			}
		}
		pdf.Cell(80, 8, kpi.Name)
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", kpi.Target))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f", kpi.Weight))
		pdf.Cell(30, 8, actual)
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	if result != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Score: %.1f%%", scorecard.ComputeScore(sc.KPIs, result.KPIValues)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Status: %s", result.Status))
	} else {
		pdf.Cell(0, 8, "No result recorded for this period")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="scorecard_%s_%d_%d.pdf"`, sc.ID, month, year))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
	}
}
