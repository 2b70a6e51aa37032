// Package api exposes the layout pipeline over HTTP.
//
// The server accepts tree documents, runs them through the pipeline, and
// persists the results in a [store.Store] so layouts can be fetched and
// re-rendered later.
//
// # Endpoints
//
//	POST   /v1/layouts          submit a document, compute and store a layout
//	GET    /v1/layouts          list stored layouts, newest first
//	GET    /v1/layouts/{id}     fetch a stored layout record
//	GET    /v1/layouts/{id}/svg render a stored layout as SVG
//	DELETE /v1/layouts/{id}     delete a stored layout
//	GET    /healthz             liveness probe
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/store"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes bounds request bodies. Large trees serialize well
	// under this; anything bigger is almost certainly abuse.
	maxBodyBytes = 8 << 20
)

// Server serves the layout API over HTTP.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
}

// NewServer creates a server backed by the given store and pipeline runner.
// A nil logger falls back to the package default.
func NewServer(addr string, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  st,
		runner: runner,
		logger: logger,
		addr:   addr,
	}
}

// Handler builds the routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
		r.Get("/{id}/svg", s.handleRenderSVG)
		r.Delete("/{id}", s.handleDeleteLayout)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
