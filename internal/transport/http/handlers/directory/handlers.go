package directoryhandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kpiboard/internal/auth"
	"kpiboard/internal/domain/directory"
	"kpiboard/internal/transport/http/api"
	"kpiboard/internal/transport/http/middleware"
	"kpiboard/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(directory.RoleAdmin, directory.RoleHRManager)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.With(admin).Post("/", h.handleCreateUser)
		r.With(admin).Put("/{userID}", h.handleUpdateUser)
		r.With(admin).Delete("/{userID}", h.handleDeleteUser)
	})

	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.With(admin).Post("/", h.handleCreateDepartment)
		r.With(admin).Put("/{departmentID}", h.handleUpdateDepartment)
		r.With(admin).Delete("/{departmentID}", h.handleDeleteDepartment)
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.GetUsers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "users_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

type userRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Department  string   `json:"department"`
	Departments []string `json:"departments"`
	Permissions []string `json:"permissions"`
	Password    string   `json:"password"`
}

func (h *Handler) validateUser(v *shared.Validator, payload userRequest, requirePassword bool) {
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("role", payload.Role, "role is required")
	v.Enum("role", payload.Role, directory.Roles, "must be one of Admin, HR Manager, Manager, User")
	if requirePassword {
		v.Required("password", payload.Password, "password is required")
	}
}

// normalizeLists keeps the array columns non-null.
func normalizeLists(payload *userRequest) {
	if payload.Departments == nil {
		payload.Departments = []string{}
	}
	if payload.Permissions == nil {
		payload.Permissions = []string{}
	}
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	h.validateUser(v, payload, true)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	normalizeLists(&payload)

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}

	user := directory.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        strings.TrimSpace(payload.Email),
		Role:         strings.TrimSpace(payload.Role),
		Department:   strings.TrimSpace(payload.Department),
		Departments:  payload.Departments,
		Permissions:  payload.Permissions,
		PasswordHash: hash,
	}
	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	existing, err := h.Store.GetUserByID(r.Context(), userID)
	if err != nil || existing == nil {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", middleware.GetRequestID(r.Context()))
		return
	}

	var payload userRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	h.validateUser(v, payload, false)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	normalizeLists(&payload)

	existing.Name = strings.TrimSpace(payload.Name)
	existing.Email = strings.TrimSpace(payload.Email)
	existing.Role = strings.TrimSpace(payload.Role)
	existing.Department = strings.TrimSpace(payload.Department)
	existing.Departments = payload.Departments
	existing.Permissions = payload.Permissions
	if err := h.Store.UpdateUser(r.Context(), existing); err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", middleware.GetRequestID(r.Context()))
		return
	}

	if strings.TrimSpace(payload.Password) != "" {
		hash, err := auth.HashPassword(payload.Password)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update password", middleware.GetRequestID(r.Context()))
			return
		}
		if err := h.Store.UpdateUserPassword(r.Context(), userID, hash); err != nil {
			api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update password", middleware.GetRequestID(r.Context()))
			return
		}
	}

	api.Success(w, existing, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	session, _ := middleware.GetUser(r.Context())
	if session.UserID == userID {
		api.Fail(w, http.StatusBadRequest, "self_delete", "cannot delete the signed-in account", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.DeleteUser(r.Context(), userID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_delete_failed", "failed to delete user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": userID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.GetDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departments_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

type departmentRequest struct {
	Name    string `json:"name"`
	Manager string `json:"manager"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	manager := strings.TrimSpace(payload.Manager)
	if manager == "" {
		manager = directory.ManagerUnassigned
	}
	dept := directory.Department{Name: strings.TrimSpace(payload.Name), Manager: manager}
	if err := h.Store.CreateDepartment(r.Context(), &dept); err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, dept, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID := chi.URLParam(r, "departmentID")

	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	manager := strings.TrimSpace(payload.Manager)
	if manager == "" {
		manager = directory.ManagerUnassigned
	}
	dept := directory.Department{ID: departmentID, Name: strings.TrimSpace(payload.Name), Manager: manager}
	if err := h.Store.UpdateDepartment(r.Context(), &dept); err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_update_failed", "failed to update department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dept, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID := chi.URLParam(r, "departmentID")
	if err := h.Store.DeleteDepartment(r.Context(), departmentID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_delete_failed", "failed to delete department", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": departmentID}, middleware.GetRequestID(r.Context()))
}
