package handlers

import (
	"net/http"
	"time"

	"research-portfolio/internal/service"
)

// AdminAuthHandler exchanges the admin password for a bearer token.
type AdminAuthHandler struct {
	auth service.AuthService
}

// NewAdminAuthHandler creates a new AdminAuthHandler.
func NewAdminAuthHandler(auth service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

// AdminAuthRequest carries the admin password.
type AdminAuthRequest struct {
	Password string `json:"password"`
}

// AdminAuthResponse carries the issued token.
//
// swagger:model AdminAuthResponse
type AdminAuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// ServeHTTP checks the password.
//
// swagger:route POST /api/admin-auth adminAuth
//
// # Log in as admin
//
// Returns a bearer token for the admin endpoints.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  schema:
//	    "$ref": "#/definitions/AdminAuthResponse"
//	'401':
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AdminAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req AdminAuthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tok, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Authentication failed")
		return
	}
	writeJSON(w, r, http.StatusOK, AdminAuthResponse{
		Success:   true,
		Message:   "Authentication successful",
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
