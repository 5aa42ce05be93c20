package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"employee-admin/internal/middleware"
	"employee-admin/internal/model"
	"employee-admin/internal/service"
	"employee-admin/pkg/apierror"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
	auth      *service.AuthService
	tokens    *middleware.AuthMiddleware
	validate  *validator.Validate
}

func NewEmployeeHandler(employees *service.EmployeeService, auth *service.AuthService, tokens *middleware.AuthMiddleware) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		auth:      auth,
		tokens:    tokens,
		validate:  newValidator(),
	}
}

func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.EmployeeLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("employee login", "username", payload.Username)
	resp, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, resp)
}

// Logout always succeeds.
func (h *EmployeeHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context(), h.tokens.TokenFromRequest(r))
	writeSuccess(w, nil)
}

func (h *EmployeeHandler) Save(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	actorID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized(apierror.MsgNotLoggedIn))
		return
	}

	var payload model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("create employee", "username", deref(payload.Username), "actor_id", actorID)
	if err := h.employees.Save(r.Context(), actorID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (h *EmployeeHandler) Page(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := queryInt(query.Get("page"), 1)
	if err != nil {
		writeError(w, apierror.BadRequest("page must be a number", "page"))
		return
	}
	pageSize, err := queryInt(query.Get("pageSize"), 10)
	if err != nil {
		writeError(w, apierror.BadRequest("pageSize must be a number", "pageSize"))
		return
	}

	result, err := h.employees.PageQuery(r.Context(), model.EmployeePageQuery{
		Page:     page,
		PageSize: pageSize,
		Name:     query.Get("name"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}

func (h *EmployeeHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized(apierror.MsgNotLoggedIn))
		return
	}

	status, err := strconv.Atoi(chi.URLParam(r, "status"))
	if err != nil {
		writeError(w, apierror.BadRequest(apierror.MsgInvalidStatus, "status"))
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("id")), 10, 64)
	if err != nil {
		writeError(w, apierror.BadRequest("employee id is required", "id"))
		return
	}

	slog.Info("set employee status", "id", id, "status", status, "actor_id", actorID)
	if err := h.employees.SetStatus(r.Context(), actorID, status, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apierror.BadRequest("employee id must be a number", "id"))
		return
	}

	employee, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if employee == nil {
		writeError(w, apierror.EmployeeNotFound(id))
		return
	}

	writeSuccess(w, employee)
}

// Update echoes the accepted request body on success.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	actorID, ok := middleware.EmployeeIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized(apierror.MsgNotLoggedIn))
		return
	}

	var payload model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("update employee", "actor_id", actorID)
	if err := h.employees.Update(r.Context(), actorID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, payload)
}

func queryInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
