package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgrades/internal/gateway/util"
	"campusgrades/internal/shared"
	"campusgrades/internal/subject"
)

// SubjectHandler serves the subject catalog endpoints.
type SubjectHandler struct {
	Subjects *subject.Service
	Validate *validator.Validate
}

// List handles GET /api/admin/subjects.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	subjects, err := h.Subjects.List(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, subjects)
}

// Get handles GET /api/admin/subjects/{id}.
func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	s, err := h.Subjects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, s)
}

// Create handles POST /api/admin/subjects.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req subject.UpsertSubjectRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	s, err := h.Subjects.Create(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, s)
}

// Update handles PUT /api/admin/subjects/{id}.
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req subject.UpsertSubjectRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	s, err := h.Subjects.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/admin/subjects/{id}. The subject's grade
// records go with it.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	if err := h.Subjects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Subject deleted"})
}

// UpdateDistribution handles PUT /api/doctor/subject/{subject_id}: a doctor
// configuring the per-component grade ceilings for a subject.
func (h *SubjectHandler) UpdateDistribution(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleDoctor, shared.RoleAdmin) {
		return
	}

	var req subject.DistributionRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	s, err := h.Subjects.UpdateGradeDistribution(r.Context(), chi.URLParam(r, "subject_id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, s)
}
