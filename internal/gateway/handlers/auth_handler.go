package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"campusgrades/internal/auth"
	"campusgrades/internal/gateway/util"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	Auth     *auth.Service
	Validate *validator.Validate
}

// Login handles POST /api/login for both doctors and students.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := util.DecodeAndValidate(r, h.Validate, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	resp, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, resp)
}
