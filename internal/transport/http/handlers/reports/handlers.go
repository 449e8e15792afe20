package reportshandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kpiboard/internal/domain/directory"
	"kpiboard/internal/domain/reports"
	"kpiboard/internal/transport/http/api"
	"kpiboard/internal/transport/http/middleware"
	"kpiboard/internal/transport/http/shared"
)

type Handler struct {
	Store          *reports.Store
	UploadsDir     string
	MaxUploadBytes int64
}

func NewHandler(store *reports.Store, uploadsDir string, maxUploadBytes int64) *Handler {
	return &Handler{Store: store, UploadsDir: uploadsDir, MaxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(directory.RoleAdmin, directory.RoleHRManager)

	r.Route("/report-types", func(r chi.Router) {
		r.Get("/", h.handleListTypes)
		r.With(admin).Post("/", h.handleCreateType)
		r.With(admin).Put("/{reportTypeID}", h.handleUpdateType)
		r.With(admin).Delete("/{reportTypeID}", h.handleDeleteType)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/", h.handleListReports)
		r.Post("/", h.handleUploadReport)
		r.Get("/{reportID}/download", h.handleDownloadReport)
		r.With(admin).Delete("/{reportID}", h.handleDeleteReport)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.GetReportTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_types_list_failed", "failed to list report types", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, types, middleware.GetRequestID(r.Context()))
}

type reportTypeRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Frequency  string `json:"frequency"`
	Format     string `json:"format"`
}

func validateReportType(v *shared.Validator, payload reportTypeRequest) {
	v.Required("name", payload.Name, "name is required")
	v.Required("department", payload.Department, "department is required")
	v.Required("frequency", payload.Frequency, "frequency is required")
	v.Enum("frequency", payload.Frequency, reports.Frequencies, "must be one of Daily, Weekly, Monthly, Quarterly, Annually")
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var payload reportTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateReportType(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rt := reports.ReportType{
		Name:       strings.TrimSpace(payload.Name),
		Department: strings.TrimSpace(payload.Department),
		Frequency:  strings.TrimSpace(payload.Frequency),
		Format:     strings.TrimSpace(payload.Format),
	}
	if err := h.Store.CreateReportType(r.Context(), &rt); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_type_create_failed", "failed to create report type", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, rt, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateType(w http.ResponseWriter, r *http.Request) {
	reportTypeID := chi.URLParam(r, "reportTypeID")

	var payload reportTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	validateReportType(v, payload)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rt := reports.ReportType{
		ID:         reportTypeID,
		Name:       strings.TrimSpace(payload.Name),
		Department: strings.TrimSpace(payload.Department),
		Frequency:  strings.TrimSpace(payload.Frequency),
		Format:     strings.TrimSpace(payload.Format),
	}
	if err := h.Store.UpdateReportType(r.Context(), &rt); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_type_update_failed", "failed to update report type", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rt, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	reportTypeID := chi.URLParam(r, "reportTypeID")
	if err := h.Store.DeleteReportType(r.Context(), reportTypeID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_type_delete_failed", "failed to delete report type", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": reportTypeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	all, err := h.Store.GetReports(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reports_list_failed", "failed to list reports", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	if page.Offset >= len(all) {
		api.Success(w, []reports.Report{}, middleware.GetRequestID(r.Context()))
		return
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	api.Success(w, all[page.Offset:end], middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadReport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "invalid multipart payload or file too large", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	reportTypeID := strings.TrimSpace(r.FormValue("reportTypeId"))
	v.Required("reportTypeId", reportTypeID, "reportTypeId is required")
	date, dateOK := v.Date("date", r.FormValue("date"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if !dateOK {
		return
	}

	types, err := h.Store.GetReportTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to resolve report type", middleware.GetRequestID(r.Context()))
		return
	}
	var rt *reports.ReportType
	for i := range types {
		if types[i].ID == reportTypeID {
			rt = &types[i]
			break
		}
	}
	if rt == nil {
		api.Fail(w, http.StatusNotFound, "report_type_not_found", "report type not found", middleware.GetRequestID(r.Context()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "file field is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	storedName := uuid.NewString() + "_" + fileName
	if err := os.MkdirAll(h.UploadsDir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to store file", middleware.GetRequestID(r.Context()))
		return
	}
	storedPath := filepath.Join(h.UploadsDir, storedName)
	dst, err := os.Create(storedPath)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to store file", middleware.GetRequestID(r.Context()))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(storedPath)
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to store file", middleware.GetRequestID(r.Context()))
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(storedPath)
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to store file", middleware.GetRequestID(r.Context()))
		return
	}

	report := reports.Report{
		ReportTypeID: rt.ID,
		Department:   rt.Department,
		Date:         date,
		Status:       reports.StatusSubmitted,
		FileName:     fileName,
		FilePath:     storedPath,
		UploadedBy:   session.Name,
	}
	if err := h.Store.CreateReport(r.Context(), &report); err != nil {
		os.Remove(storedPath)
		api.Fail(w, http.StatusInternalServerError, "report_upload_failed", "failed to record report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	report, err := h.Store.GetReport(r.Context(), reportID)
	if err != nil || report == nil {
		api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
		return
	}
	if report.FilePath == "" {
		api.Fail(w, http.StatusNotFound, "file_not_found", "report has no stored file", middleware.GetRequestID(r.Context()))
		return
	}

	f, err := os.Open(report.FilePath)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "file_not_found", "stored file is missing", middleware.GetRequestID(r.Context()))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	if _, err := io.Copy(w, f); err != nil {
		slog.Warn("report download interrupted", "report", reportID, "err", err)
	}
}

func (h *Handler) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	report, err := h.Store.GetReport(r.Context(), reportID)
	if err != nil || report == nil {
		api.Fail(w, http.StatusNotFound, "report_not_found", "report not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.DeleteReport(r.Context(), reportID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_delete_failed", "failed to delete report", middleware.GetRequestID(r.Context()))
		return
	}
	if report.FilePath != "" {
		if err := os.Remove(report.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("stored file cleanup failed", "report", reportID, "err", err)
		}
	}
	api.Success(w, map[string]string{"id": reportID}, middleware.GetRequestID(r.Context()))
}
