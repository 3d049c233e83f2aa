// Package server exposes maze generation over HTTP.
//
// Routes:
//
//	POST   /api/v1/mazes             generate and store a maze
//	GET    /api/v1/mazes             list stored mazes, newest first
//	GET    /api/v1/mazes/{id}        encoded maze bytes
//	GET    /api/v1/mazes/{id}/json   maze as a JSON document
//	GET    /api/v1/mazes/{id}/{kind} rendering: ascii, svg, png, pdf, dot, nodelink
//	DELETE /api/v1/mazes/{id}        remove a stored maze
//	GET    /healthz                  liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server serves the maze API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The runner and store stay owned by the caller.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1/mazes", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/json", s.handleGetJSON)
		r.Get("/{id}/{kind}", s.handleRender)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
