package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgrades/internal/doctor"
	"campusgrades/internal/gateway/util"
	"campusgrades/internal/shared"
)

// DoctorHandler serves the admin doctor CRUD endpoints.
type DoctorHandler struct {
	Doctors  *doctor.Service
	Validate *validator.Validate
}

// List handles GET /api/admin/doctors.
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	doctors, err := h.Doctors.List(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, doctors)
}

// Get handles GET /api/admin/doctors/{id}.
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	d, err := h.Doctors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, d)
}

// Create handles POST /api/admin/doctors.
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req doctor.CreateDoctorRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	d, err := h.Doctors.Create(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, d)
}

// Update handles PUT /api/admin/doctors/{id}.
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req doctor.UpdateDoctorRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	d, err := h.Doctors.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, d)
}

// Delete handles DELETE /api/admin/doctors/{id}.
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	if err := h.Doctors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Doctor deleted"})
}
