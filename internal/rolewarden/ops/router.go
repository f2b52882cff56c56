// Package ops serves the operational HTTP surface: liveness and readiness
// probes plus Prometheus metrics. It is infrastructure-facing only; the bot
// has no public HTTP API.
package ops

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solarroleplay/rolewarden/pkg/httpx"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

type healthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Router answers the ops endpoints.
type Router struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	startTime time.Time
	version   string

	// readiness is consulted by /readyz; nil error means ready.
	readiness func() error
}

func NewRouter(version string, logger *slog.Logger, readiness func() error) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		logger:    logger,
		startTime: time.Now(),
		version:   version,
		readiness: readiness,
	}

	r.mux.HandleFunc("GET /livez", r.handleLivez)
	r.mux.HandleFunc("GET /readyz", r.handleReadyz)
	r.mux.Handle("GET /metrics", promhttp.Handler())

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.mux, slogx.HTTPMiddleware(r.logger)).ServeHTTP(w, req)
}

func (r *Router) handleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(r.startTime).String(),
		Version: r.version,
	})
}

func (r *Router) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	code := http.StatusOK
	checks := map[string]string{"gateway": "ok"}

	if err := r.readiness(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		checks["gateway"] = "error: " + err.Error()
	}

	httpx.WriteJSON(w, code, healthResponse{
		Status:  status,
		Uptime:  time.Since(r.startTime).String(),
		Version: r.version,
		Checks:  checks,
	})
}
