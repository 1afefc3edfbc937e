// Package handlers contains the HTTP handlers the gateway router mounts.
// Handlers decode and validate payloads, enforce role checks, call the
// domain services and map results through the gateway util helpers.
package handlers

import (
	"context"
	"net/http"

	"campusgrades/internal/auth"
	"campusgrades/internal/gateway/util"
	"campusgrades/internal/shared"
)

type contextKey string

// ClaimsContextKey is where the auth middleware parks the verified claims.
const ClaimsContextKey contextKey = "claims"

// WithClaims returns a context carrying the verified token claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext extracts the verified claims, or nil when the request
// never went through the auth middleware.
func ClaimsFromContext(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// requireRole writes the failure response and returns false unless the
// request carries one of the given roles.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...string) bool {
	claims := ClaimsFromContext(r)
	if claims == nil {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	for _, role := range roles {
		if claims.Role == role {
			return true
		}
	}
	util.WriteJSONError(w, http.StatusForbidden, "Access denied")
	return false
}

// requireSelfOrStaff allows doctors and admins through unconditionally;
// students only when the token subject matches studentID.
func requireSelfOrStaff(w http.ResponseWriter, r *http.Request, studentID string) bool {
	claims := ClaimsFromContext(r)
	if claims == nil {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	switch claims.Role {
	case shared.RoleDoctor, shared.RoleAdmin:
		return true
	case shared.RoleStudent:
		if claims.Subject == studentID {
			return true
		}
	}
	util.WriteJSONError(w, http.StatusForbidden, "Access denied: Students can only view their own grades")
	return false
}
