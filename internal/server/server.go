// Package server exposes the card pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/ratelimit"
)

// maxBodyBytes bounds POST /api/card bodies.
const maxBodyBytes = 64 << 10

// cardCacheControl lets CDNs and GitHub's camo proxy keep a card for 30
// minutes and serve it stale for a day while revalidating.
const cardCacheControl = "public, max-age=1800, s-maxage=1800, stale-while-revalidate=86400"

// Options configures a Server.
type Options struct {
	Addr         string
	CORSOrigin   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Runner  *pipeline.Runner
	Quotes  pipeline.QuoteSource
	Limiter ratelimit.Limiter
	Logger  *log.Logger

	// Ready, when set, backs /-/ready (typically a cache ping).
	Ready func(ctx context.Context) error
}

// Server is the statcard HTTP API.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
	http   *http.Server
}

// New builds the router. A nil Limiter disables rate limiting.
func New(opts Options) *Server {
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, nil, opts.Quotes, opts.Logger)
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      opts.WriteTimeout,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.opts.CORSOrigin))

	r.Get("/-/live", s.live)
	r.Get("/-/ready", s.ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/card", s.getCard)
		r.Post("/card", s.postCard)
		r.Get("/quote", s.getQuote)
		r.Get("/stats/{username}", s.getStats)
		r.Get("/themes", s.getThemes)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.opts.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
