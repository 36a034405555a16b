package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"research-portfolio/internal/analysis"
	"research-portfolio/internal/handlers"
	"research-portfolio/internal/metrics"
	"research-portfolio/internal/service"
	"research-portfolio/internal/service/mocks"
)

type routerMocks struct {
	papers *mocks.MockPaperService
	sync   *mocks.MockSyncService
	maint  *mocks.MockMaintenanceService
	auth   *mocks.MockAuthService
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := routerMocks{
		papers: mocks.NewMockPaperService(ctrl),
		sync:   mocks.NewMockSyncService(ctrl),
		maint:  mocks.NewMockMaintenanceService(ctrl),
		auth:   mocks.NewMockAuthService(ctrl),
	}
	deps := &Deps{
		Papers:      m.papers,
		Sync:        m.sync,
		Reanalyze:   mocks.NewMockReanalyzeService(ctrl),
		Maintenance: m.maint,
		Imports:     mocks.NewMockImportService(ctrl),
		Files:       mocks.NewMockFileService(ctrl),
		QA:          mocks.NewMockQAService(ctrl),
		Auth:        m.auth,
		Profile:     &analysis.Profile{Name: "Test"},
		Health:      handlers.NewHealthHandler(handlers.PingFunc(func(context.Context) error { return nil }), nil, true, true),
		Metrics:     metrics.New(),
	}
	return NewRouter(deps), m
}

func TestNewRouter(t *testing.T) {
	router, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router, m := newTestRouter(t)
	m.papers.EXPECT().Stats(gomock.Any()).Return(service.Stats{Papers: 2, Themes: 1}, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /api/stats", http.MethodGet, "/api/stats", http.StatusOK},
		{"GET /api/site", http.MethodGet, "/api/site", http.StatusOK},
		{"GET /health", http.MethodGet, "/health", http.StatusOK},
		{"GET /metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"POST /api/add-paper bad body", http.MethodPost, "/api/add-paper", http.StatusBadRequest},
		{"GET /api/add-paper method not allowed", http.MethodGet, "/api/add-paper", http.StatusMethodNotAllowed},
		{"GET /papers/{id} invalid id", http.MethodGet, "/papers/abc", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_AdminRoutesRequireAuth(t *testing.T) {
	router, m := newTestRouter(t)

	m.auth.EXPECT().Verify(gomock.Any(), "").Return(&service.Error{Kind: service.ErrUnauthorized, Message: "Unauthorized"})
	req := httptest.NewRequest(http.MethodPost, "/api/fix-arrays", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Router POST /api/fix-arrays without token status = %v, want %v", w.Code, http.StatusUnauthorized)
	}

	m.auth.EXPECT().Verify(gomock.Any(), "tok").Return(nil)
	m.maint.EXPECT().RepairArrays(gomock.Any()).Return(0, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/fix-arrays", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Router POST /api/fix-arrays with token status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRouter_MetricsUseRoutePattern(t *testing.T) {
	router, m := newTestRouter(t)
	m.papers.EXPECT().Get(gomock.Any(), int64(5)).Return(nil, &service.Error{Kind: service.ErrNotFound, Message: "Paper not found"})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/papers/5", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), `route="/papers/{id}"`) {
		t.Error("Router metrics should label requests by route pattern")
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/add-paper", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
