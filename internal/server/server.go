// Package server exposes the simulator over HTTP.
//
// The catalog snapshot is held behind an atomic pointer so it can be
// replaced while requests are in flight. Results are memoized in memory,
// keyed by catalog content digest and query digest.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecofocus/internal/catalog"
	"github.com/rshade/ecofocus/internal/logging"
)

const (
	defaultMemoTTL    = 10 * time.Minute
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithMemoTTL sets how long a result stays memoized. Zero or less disables
// memoization.
func WithMemoTTL(ttl time.Duration) Option {
	return func(s *Server) { s.memoTTL = ttl }
}

// WithLogger sets the logger attached to every request. Log lines add
// their own component field.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// Server serves the simulation API.
type Server struct {
	snapshot atomic.Pointer[catalog.Snapshot]
	memo     *gocache.Cache
	memoTTL  time.Duration
	metrics  *metrics
	logger   zerolog.Logger
	router   chi.Router
}

// New returns a Server answering from snap.
func New(snap *catalog.Snapshot, opts ...Option) (*Server, error) {
	if snap == nil {
		return nil, errors.New("server: catalog snapshot is required")
	}
	s := &Server{
		memoTTL: defaultMemoTTL,
		logger:  *logging.FromContext(context.Background()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(snap)
	if s.memoTTL > 0 {
		s.memo = gocache.New(s.memoTTL, 2*s.memoTTL)
	}
	s.metrics = newMetrics(s.memoSize)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.traced, middleware.Recoverer, s.instrumented)

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.metrics.handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/impacts", s.handleImpacts)
		r.Route("/textile", func(r chi.Router) {
			r.Get("/processes", s.handleProcesses)
			r.Get("/materials", s.handleMaterials)
			r.Get("/products", s.handleProducts)
			r.Post("/simulator", s.handleSimulate)
			r.Post("/simulator/detailed", s.handleSimulateDetailed)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Snapshot returns the catalog currently served.
func (s *Server) Snapshot() *catalog.Snapshot { return s.snapshot.Load() }

// SetSnapshot replaces the catalog. Memoized results are dropped.
func (s *Server) SetSnapshot(snap *catalog.Snapshot) {
	if snap == nil {
		return
	}
	s.snapshot.Store(snap)
	if s.memo != nil {
		s.memo.Flush()
	}
	s.logger.Info().
		Str("component", "server").
		Str("catalog_version", snap.Manifest().Version).
		Str("catalog_digest", snap.Digest()).
		Msg("catalog snapshot replaced")
}

func (s *Server) memoSize() int {
	if s.memo == nil {
		return 0
	}
	return s.memo.ItemCount()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// In-flight requests outlive ctx until Shutdown returns.
	base := context.WithoutCancel(ctx)
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().
			Str("component", "server").
			Str("addr", ln.Addr().String()).
			Str("catalog_version", s.Snapshot().Manifest().Version).
			Msg("serving simulation API")
		if serveErr := srv.Serve(ln); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(base, shutdownTimeout)
		defer cancel()
		s.logger.Info().Str("component", "server").Msg("shutting down simulation API")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
