package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/mock/gomock"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/service/mocks"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerMiddleware_RequestAttributes(t *testing.T) {
	logs := captureLogs(t)

	var ctx context.Context
	h := middleware.RequestID(LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
		contextutil.LoggerFromContext(ctx).Info("answering question")
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/research-qa", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if ctx == nil || ctx.Value(contextutil.LoggerKey()) == nil {
		t.Fatal("LoggerMiddleware() did not store a logger in the context")
	}
	line := logs.String()
	for _, want := range []string{"method=POST", "path=/api/research-qa", "request_id="} {
		if !strings.Contains(line, want) {
			t.Errorf("LoggerMiddleware() log = %q, missing %q", line, want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		status  int
		wantLog bool
	}{
		{"paper list", "/api/papers", http.StatusOK, true},
		{"root health ok", "/health", http.StatusOK, false},
		{"api health ok", "/api/health", http.StatusOK, false},
		{"degraded health", "/api/health", http.StatusServiceUnavailable, true},
		{"missing paper page", "/papers/99", http.StatusNotFound, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("RequestLogger() status = %v, want %v", w.Code, tt.status)
			}
			if got := strings.Contains(logs.String(), "request completed"); got != tt.wantLog {
				t.Errorf("RequestLogger() logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestResponseWriter_DefaultStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("{}"))
	if rw.statusCode != http.StatusOK {
		t.Errorf("responseWriter statusCode after Write = %v, want %v", rw.statusCode, http.StatusOK)
	}

	rw = &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	rw.WriteHeader(http.StatusConflict)
	if rw.statusCode != http.StatusConflict {
		t.Errorf("responseWriter statusCode = %v, want %v", rw.statusCode, http.StatusConflict)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantNext   bool
	}{
		{"preflight", http.MethodOptions, "https://portfolio.example", http.StatusNoContent, "https://portfolio.example", false},
		{"echoes origin", http.MethodPost, "https://portfolio.example", http.StatusOK, "https://portfolio.example", true},
		{"no origin", http.MethodGet, "", http.StatusOK, "*", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			req := httptest.NewRequest(tt.method, "/api/add-paper", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("CORS() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("CORS() Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, DELETE, OPTIONS" {
				t.Errorf("CORS() Allow-Methods = %q", got)
			}
			if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
				t.Errorf("CORS() Allow-Headers = %q", got)
			}
			if called != tt.wantNext {
				t.Errorf("CORS() called next = %v, want %v", called, tt.wantNext)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		credential string
		verifyErr  error
		wantStatus int
	}{
		{"bearer token", "Bearer tok", "tok", nil, http.StatusOK},
		{"raw password", "hunter2", "hunter2", nil, http.StatusOK},
		{"rejected", "Bearer bad", "bad", errors.New("invalid token"), http.StatusUnauthorized},
		{"missing header", "", "", errors.New("missing credential"), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			auth := mocks.NewMockAuthService(ctrl)
			auth.EXPECT().Verify(gomock.Any(), tt.credential).Return(tt.verifyErr)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/api/sync-dropbox", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()

			RequireAdmin(auth)(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("RequireAdmin() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
