// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package adminapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ned0000/servmgmtd/internal/config"
	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/supervisor"
)

// requestIDWithLogging stamps every request's context with a request ID and
// a fresh correlation ID before chi's own RequestID middleware runs, so
// every log line emitted while handling the request can be tied back to it.
func requestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set("X-Request-ID", requestID)
			}
			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = logging.ContextWithNewCorrelationID(ctx)
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRouter builds the admin HTTP surface over facade, configured by cfg.
func NewRouter(facade *supervisor.Facade, cfg config.AdminConfig) http.Handler {
	h := newHandler(facade)

	r := chi.NewRouter()
	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	reqs, window := cfg.RateLimitReqs, cfg.RateLimitWindow
	if reqs > 0 && window > 0 {
		r.Use(httprate.Limit(reqs, window, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.listServices)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", h.getService)
			r.Post("/start", h.startService)
			r.Post("/stop", h.stopService)
			r.Put("/startup-type", h.setStartupType)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
