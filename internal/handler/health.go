package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthCheck is one named dependency check
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler reports whether the service's dependencies are reachable
type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			slog.Warn("health check failed",
				slog.String("check", c.Name),
				slog.String("error", err.Error()),
			)
			resp.Checks[c.Name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	WriteJSON(w, status, resp)
}
