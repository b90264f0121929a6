package engine

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/craft/pkg/registry"
)

// Engine crafts and paints against a registry.
type Engine struct {
	registry     *registry.Registry
	logger       *slog.Logger
	metrics      *Metrics
	strict       bool
	onDiagnostic func(Diagnostic)
	templates    sync.Map // source -> *tmpl.Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the registry. Defaults to registry.Default.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithStrict makes every diagnostic panic with its coded error.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithDiagnosticHandler registers fn to receive every diagnostic.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(e *Engine) {
		e.onDiagnostic = fn
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: registry.Default,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Strict reports whether diagnostics panic.
func (e *Engine) Strict() bool {
	return e.strict
}
