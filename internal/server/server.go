// Package server implements the flowcanvas dev backend.
//
// The serve command runs this HTTP API so the editor's panels and the
// workflow runner have something real to talk to during local
// development: component listings, data list storage, a model listing,
// and stub execution and email endpoints that validate and log instead
// of doing real work.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowcanvas/pkg/buildinfo"
	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/datalist"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// Server wires the backend handlers to their stores.
type Server struct {
	registry *workflow.Registry
	lists    datalist.Store
	cache    cache.Cache
	logger   *log.Logger
}

// New creates a Server. The cache fronts the model listing; pass a
// [cache.NullCache] to disable caching.
func New(registry *workflow.Registry, lists datalist.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{registry: registry, lists: lists, cache: c, logger: logger}
}

// Router builds the chi router with all backend routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/components", s.handleComponents)
		r.Get("/models", s.handleModels)
		r.Post("/workflows/execute", s.handleExecute)
		r.Post("/communication/send_email", s.handleSendEmail)

		r.Route("/data", func(r chi.Router) {
			r.Get("/lists", s.handleListAll)
			r.Post("/lists", s.handleListCreate)
			r.Get("/lists/{id}", s.handleListGet)
			r.Delete("/lists/{id}", s.handleListDelete)
			r.Post("/lists/{id}/items", s.handleItemAdd)
			r.Get("/search", s.handleSearch)
		})
	})

	return r
}

// ListenAndServe runs the backend until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"service": "flowcanvas-backend",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
