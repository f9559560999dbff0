package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"phonereg/pkg/platform/httputil"
	"phonereg/pkg/requestcontext"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string   `json:"status"`
	Failing []string `json:"failing,omitempty"`
}

func healthHandler(checks []HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		var failing []string
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					"request_id", requestcontext.RequestID(ctx),
					"dependency", c.Name,
					"error", err,
				)
				failing = append(failing, c.Name)
			}
		}

		if len(failing) > 0 {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Failing: failing})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
	}
}
