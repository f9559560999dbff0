package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phonereg/internal/platform/metrics"
	"phonereg/internal/platform/middleware"
	dErrors "phonereg/pkg/domain-errors"
	"phonereg/pkg/platform/httputil"
	"phonereg/pkg/platform/middleware/cors"
	"phonereg/pkg/platform/middleware/metadata"
	"phonereg/pkg/platform/middleware/requestid"
	"phonereg/pkg/platform/middleware/requesttime"
)

// requestTimeout bounds every request, including a cold valid-count computation.
const requestTimeout = 30 * time.Second

// RouteRegistrar mounts a module's endpoints.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// RouterDeps are the collaborators the router wires together.
type RouterDeps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Checks  []HealthCheck
	// API handlers are mounted under /api.
	API []RouteRegistrar
	// Internal handlers serve operators and are mounted under /internal.
	Internal []RouteRegistrar
}

// NewRouter builds the HTTP handler for the whole service.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.AccessLog(logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(cors.AllowAll)
	r.Use(chimw.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})

	r.Get("/health", healthHandler(deps.Checks, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		for _, h := range deps.API {
			h.Register(api)
		}
	})
	if len(deps.Internal) > 0 {
		r.Route("/internal", func(internal chi.Router) {
			for _, h := range deps.Internal {
				h.Register(internal)
			}
		})
	}

	return r
}
