package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/craft/internal/dev"
	"github.com/vango-dev/craft/pkg/engine"
)

// Options configure a Server.
type Options struct {
	// Engine paints everything. Required.
	Engine *engine.Engine

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// TemplatesDir is served under /pages/.
	TemplatesDir string

	// Title prefixes page titles. Defaults to "craft".
	Title string

	// Reload enables dev mode: the reload socket is served and pages get
	// the reload client.
	Reload *dev.ReloadServer

	// Gatherer backs /metrics. The route is absent when nil.
	Gatherer prometheus.Gatherer

	// Registerer receives the request metrics. None are recorded when nil.
	Registerer prometheus.Registerer

	// Namespace prefixes request metric names. Defaults to "craft".
	Namespace string

	// Tracer defaults to the global provider's "craft/preview" tracer.
	Tracer trace.Tracer
}

// Server is the preview HTTP server.
type Server struct {
	engine    *engine.Engine
	logger    *slog.Logger
	templates string
	title     string
	reload    *dev.ReloadServer
	router    chi.Router
}

// New creates a Server and builds its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "craft"
	}
	if opts.Namespace == "" {
		opts.Namespace = "craft"
	}

	s := &Server{
		engine:    opts.Engine,
		logger:    opts.Logger,
		templates: opts.TemplatesDir,
		title:     opts.Title,
		reload:    opts.Reload,
	}

	r := chi.NewRouter()
	r.Use(tracing(tracerOrDefault(opts.Tracer)))
	r.Use(newHTTPMetrics(opts.Registerer, opts.Namespace).middleware)
	r.Use(s.recoverer)

	r.Get("/", s.handleGallery)
	r.Get("/components/{name}", s.handleComponent)
	r.Post("/paint", s.handlePaint)
	r.Get("/pages/*", s.handlePage)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if s.reload != nil {
		r.Get(dev.ReloadPath, s.reload.HandleWebSocket)
	}
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.reload != nil {
		s.reload.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}
