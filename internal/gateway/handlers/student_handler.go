package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgrades/internal/gateway/util"
	"campusgrades/internal/shared"
	"campusgrades/internal/store"
	"campusgrades/internal/student"
)

// StudentHandler serves the admin student CRUD endpoints.
type StudentHandler struct {
	Students *student.Service
	Validate *validator.Validate
}

// List handles GET /api/admin/students.
// Query Params: page, per_page, search, level, specialization, academic_year
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	query := r.URL.Query()
	filter := store.StudentFilter{
		Search:         query.Get("search"),
		Level:          query.Get("level"),
		Specialization: query.Get("specialization"),
		AcademicYear:   query.Get("academic_year"),
		Page:           parsePositiveInt(query.Get("page"), 1),
		PerPage:        parsePositiveInt(query.Get("per_page"), 10),
	}

	page, err := h.Students.List(r.Context(), filter)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /api/admin/students/{id}.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	s, err := h.Students.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, s)
}

// Create handles POST /api/admin/students.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req student.UpsertStudentRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	s, err := h.Students.Create(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, s)
}

// Update handles PUT /api/admin/students/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req student.UpsertStudentRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	s, err := h.Students.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/admin/students/{id}. The student's grade
// records go with the account.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	if err := h.Students.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Student deleted"})
}

func parsePositiveInt(value string, fallback int64) int64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
