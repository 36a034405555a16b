package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"research-portfolio/internal/modelout"
	"research-portfolio/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Field: "title", Message: "x"}, http.StatusBadRequest},
		{"unauthorized", &service.Error{Kind: service.ErrUnauthorized, Message: "Invalid password"}, http.StatusUnauthorized},
		{"not found", fmt.Errorf("load: %w", service.ErrNotFound), http.StatusNotFound},
		{"conflict", &service.Error{Kind: service.ErrConflict, Message: "exists"}, http.StatusConflict},
		{"external", fmt.Errorf("%w: model", service.ErrExternalService), http.StatusInternalServerError},
		{"upstream", &service.UpstreamError{Op: "failed to list files", Err: errors.New("expired_access_token")}, http.StatusInternalServerError},
		{"malformed inside upstream", &service.UpstreamError{Op: "failed to re-analyze paper", Err: &modelout.MalformedOutputError{}}, http.StatusBadGateway},
		{"malformed model output", &modelout.MalformedOutputError{}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation message", &service.ValidationError{Field: "title", Message: "Title is required"}, http.StatusBadRequest, "Title is required"},
		{"service message", &service.Error{Kind: service.ErrNotFound, Message: "Paper not found"}, http.StatusNotFound, "Paper not found"},
		{"internal error hidden", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Failed to fetch papers"},
		{"upstream message passed through", fmt.Errorf("sync: %w", &service.UpstreamError{Op: "failed to list files", Err: errors.New("expired_access_token")}),
			http.StatusInternalServerError, "Failed to fetch papers: expired_access_token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			writeServiceError(rec, req, tt.err, "Failed to fetch papers")

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", rec.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success || resp.Error != tt.wantMsg {
				t.Errorf("response = %+v, want error %q", resp, tt.wantMsg)
			}
		})
	}
}
