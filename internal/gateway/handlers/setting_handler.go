package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campusgrades/internal/gateway/util"
	"campusgrades/internal/settings"
	"campusgrades/internal/shared"
)

// SettingHandler serves the system setting endpoints.
type SettingHandler struct {
	Settings *settings.Service
	Validate *validator.Validate
}

// Get handles GET /api/setting. Any authenticated user may read the
// current setting; the frontend needs it to decide whether to show grades.
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Settings.Get(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, setting)
}

// Create handles POST /api/setting (admin).
func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req settings.UpsertSettingRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	setting, err := h.Settings.Create(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, setting)
}

// Update handles PUT /api/setting/{id} (admin).
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	var req settings.UpsertSettingRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	setting, err := h.Settings.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, setting)
}

// Delete handles DELETE /api/setting/{id} (admin).
func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, shared.RoleAdmin, shared.RoleDoctor) {
		return
	}

	if err := h.Settings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "System setting deleted"})
}
