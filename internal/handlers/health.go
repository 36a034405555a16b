package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"research-portfolio/internal/contextutil"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping implements Pinger.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 Pinger
	vectors            Pinger
	modelConfigured    bool
	filesConfigured    bool
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. vectors may be nil when no
// index is configured.
func NewHealthHandler(db Pinger, vectors Pinger, modelConfigured, filesConfigured bool) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		vectors:            vectors,
		modelConfigured:    modelConfigured,
		filesConfigured:    filesConfigured,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// A failed database ping is unhealthy. Missing model or file store
// credentials and an unreachable index are degraded. Both return 503.
//
// swagger:route GET /health healthCheck
//
// # Health check endpoint
//
// Returns the health status of the database, model, file store and index.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is degraded or unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	rep := healthReport{status: statusHealthy, checks: map[string]string{}}

	if err := h.db.Ping(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		rep.fail("database", "database_unavailable", statusUnhealthy)
	} else {
		rep.checks["database"] = "ok"
	}
	rep.configured("model", h.modelConfigured)
	rep.configured("file_store", h.filesConfigured)
	if h.vectors != nil {
		if err := h.vectors.Ping(checkCtx); err != nil {
			logger.WarnContext(ctx, "vector store health check failed", "error", err)
			rep.fail("vector_store", "vector_store_unavailable", statusDegraded)
		} else {
			rep.checks["vector_store"] = "ok"
		}
	}

	code := http.StatusOK
	if rep.status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    rep.status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    rep.checks,
		Issues:    rep.issues,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// healthReport accumulates check results. Status only gets worse.
type healthReport struct {
	status string
	checks map[string]string
	issues []string
}

func (r *healthReport) fail(name, issue, status string) {
	r.checks[name] = "error"
	r.issues = append(r.issues, issue)
	if status == statusUnhealthy || r.status == statusHealthy {
		r.status = status
	}
}

func (r *healthReport) configured(name string, ok bool) {
	if ok {
		r.checks[name] = "ok"
		return
	}
	r.checks[name] = "not_configured"
	r.issues = append(r.issues, name+"_not_configured")
	if r.status == statusHealthy {
		r.status = statusDegraded
	}
}
