package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vipinshyam/math-tools-bridge/internal/bridge"
	"github.com/vipinshyam/math-tools-bridge/internal/handlers"
	"github.com/vipinshyam/math-tools-bridge/internal/observability"
)

// NewRouter wires the bridge's HTTP surface: health and metrics plus the
// service and intent dispatch endpoints backed by the manager's current
// registry snapshot.
func NewRouter(m *bridge.Manager) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Get("/services", listServices(m))
	r.Post("/services/{name}", callService(m))

	r.Get("/intents", listIntents(m))
	r.Post("/intents/{type}", callIntent(m))

	return r
}
