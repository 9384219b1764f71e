package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kailas-cloud/scenttwin/internal/metrics"
)

// Route paths.
const (
	SearchPath       = "/api/search"
	LegacySearchPath = "/api/gemini"
	HealthPath       = "/health"
	MetricsPath      = "/metrics"
	MCPPath          = "/mcp"
)

// RouterConfig holds the optional parts of the router.
type RouterConfig struct {
	// APIKeys enables bearer auth when non-empty.
	APIKeys []string
	// MCP is mounted at MCPPath when set.
	MCP http.Handler
}

// NewRouter assembles middleware and routes around s.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())

	// Search handles every method itself so non-POST gets the JSON 405.
	r.HandleFunc(SearchPath, s.Search)
	r.HandleFunc(LegacySearchPath, s.Search)
	r.Get(HealthPath, s.HealthCheck)
	r.Get(MetricsPath, s.Metrics)
	if cfg.MCP != nil {
		r.Handle(MCPPath, cfg.MCP)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	return r
}
