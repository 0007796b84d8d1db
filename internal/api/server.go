// Package api serves board layouts over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/layout                 lay out the board in the request body
//	GET    /v1/boards                 list stored boards
//	POST   /v1/boards                 store a board
//	GET    /v1/boards/{id}            fetch a stored board
//	DELETE /v1/boards/{id}            delete a stored board
//	GET    /v1/boards/{id}/layout     lay out a stored board
//
// Layout endpoints accept width, height and scrollbar query parameters that
// override the board's viewport, and a format parameter (json, svg, text).
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/autogrid/pkg/pipeline"
	"github.com/matzehuels/autogrid/pkg/store"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Config configures a [Server].
type Config struct {
	Runner       *pipeline.Runner
	Store        store.Store
	Logger       *log.Logger
	MaxBodyBytes int64
	// Timeout bounds the handling of one request.
	Timeout time.Duration
}

// Server is the HTTP layout service.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New builds the server and its routes. Nil dependencies fall back to a
// cache-less runner and an in-memory store.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Post("/", s.handleCreateBoard)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBoard)
				r.Delete("/", s.handleDeleteBoard)
				r.Get("/layout", s.handleBoardLayout)
			})
		})
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
