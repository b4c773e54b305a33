// Package server wires the intake pipelines, static pages and operational
// endpoints into one HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trucking-site/internal/common/config"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/intake"
	"trucking-site/internal/site"
	"trucking-site/internal/store"
)

// Server hosts the website API and pages.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New builds the router and server from the two pipelines and the store.
func New(cfg *config.Config, contact, apply *intake.Pipeline, docStore store.DocumentStore, log logger.Logger) *Server {
	router := mux.NewRouter()
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/contact", &contactHandler{pipeline: contact, logger: log}).Methods(http.MethodPost)
	api.Handle("/apply", &applyHandler{pipeline: apply, logger: log}).Methods(http.MethodPost)

	router.HandleFunc("/health", healthHandler(docStore)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	home := site.Home()
	router.HandleFunc(home.Path, pageHandler(home, log)).Methods(http.MethodGet)
	for _, page := range site.Pages() {
		router.HandleFunc(page.Path, pageHandler(page, log)).Methods(http.MethodGet)
	}

	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"error": "Method not allowed",
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      router,
			ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		},
		logger: log,
	}
}

// healthHandler reports liveness plus whether the store answers a ping.
// An unavailable store still reports 200: the site serves pages and the
// contact form without it.
func healthHandler(docStore store.DocumentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeStatus := "ok"
		if err := docStore.Ping(r.Context()); err != nil {
			storeStatus = "unavailable"
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"store":  storeStatus,
		})
	}
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"address": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
