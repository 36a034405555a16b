package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/modelout"
	"research-portfolio/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MessageResponse is a success response carrying only a message.
//
// swagger:model MessageResponse
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, ErrorResponse{Success: false, Error: message})
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	var malformed *modelout.MalformedOutputError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps err to a status and writes it. Validation and
// categorized service errors carry their own client message. Upstream
// failures are reported as prefix plus the upstream message; anything else
// is logged and reported with prefix alone.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	status := statusFor(err)

	var ve *service.ValidationError
	var se *service.Error
	var ue *service.UpstreamError
	switch {
	case errors.As(err, &ve):
		logger.WarnContext(ctx, "validation error", "field", ve.Field, "error", ve.Message)
		writeError(w, r, status, ve.Message)
	case errors.As(err, &se):
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, prefix, "error", err)
		} else {
			logger.WarnContext(ctx, prefix, "error", err)
		}
		writeError(w, r, status, se.Message)
	case status == http.StatusInternalServerError && errors.As(err, &ue):
		logger.ErrorContext(ctx, prefix, "op", ue.Op, "error", ue.Err)
		writeError(w, r, status, prefix+": "+ue.Err.Error())
	default:
		logger.ErrorContext(ctx, prefix, "error", err)
		writeError(w, r, status, prefix)
	}
}

// decodeJSON decodes the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	ctx := r.Context()
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
	writeError(w, r, http.StatusBadRequest, "Invalid request body")
	return false
}
