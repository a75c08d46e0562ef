// Package server exposes the estimator over a small JSON HTTP API.
//
// Routes:
//
//	POST /v1/estimate               estimate a household (?days=N adds a projection)
//	GET  /v1/housing-types          list supported tiers
//	GET  /v1/housing-types/{type}   describe one tier
//	GET  /healthz                   liveness probe
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/rshade/voltwise/internal/config"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

const readHeaderTimeout = 5 * time.Second

// Server serves the estimate API.
type Server struct {
	cfg     config.ServerConfig
	logger  zerolog.Logger
	limiter *RateLimiter
	handler http.Handler
}

// New builds the router and middleware chain for cfg.
func New(cfg config.ServerConfig, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the complete middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/v1").Subrouter()
	api.Use(func(next http.Handler) http.Handler { return withRateLimit(s.limiter, next) })
	api.HandleFunc("/estimate", handleEstimate).Methods(http.MethodPost)
	api.HandleFunc("/housing-types", handleHousingTypes).Methods(http.MethodGet)
	api.HandleFunc("/housing-types/{type}", handleHousingType).Methods(http.MethodGet)

	// Subrouters resolve method mismatches on their own, so both need the
	// JSON handlers.
	for _, rt := range []*mux.Router{router, api} {
		rt.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
		rt.NotFoundHandler = http.HandlerFunc(handleNotFound)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(withLogging(s.logger, router))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, "not found")
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		s.limiter.Stop()
		return fmt.Errorf("listening on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
