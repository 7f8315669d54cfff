// Package web provides the HTTP server and JSON API for the estate office.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/estate-office/internal/agent"
	"github.com/evcraddock/estate-office/internal/client"
	"github.com/evcraddock/estate-office/internal/contact"
	"github.com/evcraddock/estate-office/internal/contract"
	"github.com/evcraddock/estate-office/internal/dashboard"
	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/estate"
	"github.com/evcraddock/estate-office/internal/logging"
	"github.com/evcraddock/estate-office/internal/offer"
	"github.com/evcraddock/estate-office/internal/request"
)

// shutdownTimeout bounds how long in-flight requests may drain on exit.
const shutdownTimeout = 10 * time.Second

// Server is the API HTTP server. Repositories are built once from a
// single database handle and shared by every request.
type Server struct {
	db        *db.DB
	contacts  *contact.Repository
	clients   *client.Repository
	agents    *agent.Repository
	estates   *estate.Repository
	contracts *contract.Repository
	requests  *request.Repository
	offers    *offer.Repository
	dashboard *dashboard.Service

	corsOrigin string
	now        func() time.Time
	mux        *http.ServeMux
	handler    http.Handler
}

// Option customizes server construction.
type Option func(*Server)

// WithCORSOrigin sets the Access-Control-Allow-Origin value. An empty
// origin disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithClock overrides the time source used by date-relative queries.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates an API server over d.
func NewServer(d *db.DB, opts ...Option) *Server {
	s := &Server{
		db:         d,
		contacts:   contact.NewRepository(d),
		clients:    client.NewRepository(d),
		agents:     agent.NewRepository(d),
		estates:    estate.NewRepository(d),
		contracts:  contract.NewRepository(d),
		requests:   request.NewRepository(d),
		offers:     offer.NewRepository(d),
		dashboard:  dashboard.NewService(d),
		corsOrigin: "*",
		now:        time.Now,
		mux:        http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	s.handler = logging.RequestLogger(s.cors(s.mux))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// cors adds the CORS headers browser dashboards need and answers
// preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	if s.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.corsOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		apiError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
