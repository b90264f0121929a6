package crafttest

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/registry"
	"github.com/vango-dev/craft/pkg/render"
	"github.com/vango-dev/craft/pkg/ui"
)

// Harness bundles an isolated registry and engine with diagnostic capture.
type Harness struct {
	t        testing.TB
	Registry *registry.Registry
	Engine   *engine.Engine

	mu          sync.Mutex
	diagnostics []engine.Diagnostic
}

type settings struct {
	strict bool
	ui     bool
	types  []*component.Type
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*settings)

// Lenient records diagnostics instead of panicking on them.
func Lenient() Option {
	return func(s *settings) { s.strict = false }
}

// WithTypes registers the given component types under their own names.
func WithTypes(types ...*component.Type) Option {
	return func(s *settings) { s.types = append(s.types, types...) }
}

// WithUI registers the reference components from package ui.
func WithUI() Option {
	return func(s *settings) { s.ui = true }
}

// WithLogger sends engine and registry logs to logger. Logs are discarded
// otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New creates a Harness. Registration failures fail the test immediately.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	s := settings{strict: true}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Harness{t: t}
	h.Registry = registry.New(registry.WithLogger(s.logger))
	h.Engine = engine.New(
		engine.WithRegistry(h.Registry),
		engine.WithLogger(s.logger),
		engine.WithStrict(s.strict),
		engine.WithDiagnosticHandler(h.record),
	)

	if s.ui {
		if err := ui.Register(h.Registry, h.Engine); err != nil {
			t.Fatalf("crafttest: register ui: %v", err)
		}
	}
	for _, typ := range s.types {
		if err := h.Registry.Register(typ, ""); err != nil {
			t.Fatalf("crafttest: register %s: %v", typ.Name, err)
		}
	}
	return h
}

func (h *Harness) record(d engine.Diagnostic) {
	h.mu.Lock()
	h.diagnostics = append(h.diagnostics, d)
	h.mu.Unlock()
}

// Craft calls the engine's Craft.
func (h *Harness) Craft(target any, props map[string]any, children ...any) engine.Result {
	return h.Engine.Craft(target, props, children...)
}

// Paint calls the engine's Paint.
func (h *Harness) Paint(target any, props map[string]any, children ...any) engine.Result {
	return h.Engine.Paint(target, props, children...)
}

// HTML materializes items and renders them as markup.
func (h *Harness) HTML(items ...any) string {
	return render.HTML(h.Engine.Materialize(items...))
}

// Template paints src with params and renders the result. A compile
// error fails the test.
func (h *Harness) Template(src string, params map[string]any) string {
	h.t.Helper()
	rs, err := h.Engine.PaintHTML(src, params)
	if err != nil {
		h.t.Fatalf("crafttest: template: %v", err)
	}
	return render.HTML(engine.Nodes(rs))
}

// Diagnostics returns the diagnostics recorded so far.
func (h *Harness) Diagnostics() []engine.Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]engine.Diagnostic, len(h.diagnostics))
	copy(out, h.diagnostics)
	return out
}

// Codes returns the codes of the recorded diagnostics, in order.
func (h *Harness) Codes() []string {
	ds := h.Diagnostics()
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

// Reset forgets recorded diagnostics.
func (h *Harness) Reset() {
	h.mu.Lock()
	h.diagnostics = nil
	h.mu.Unlock()
}

// ExpectNoDiagnostics fails the test if anything was reported.
func (h *Harness) ExpectNoDiagnostics() {
	h.t.Helper()
	if codes := h.Codes(); len(codes) > 0 {
		h.t.Errorf("expected no diagnostics, got %v", codes)
	}
}

// ExpectDiagnostics asserts the exact sequence of reported codes.
func (h *Harness) ExpectDiagnostics(codes ...string) {
	h.t.Helper()
	got := h.Codes()
	if strings.Join(got, ",") != strings.Join(codes, ",") {
		h.t.Errorf("expected diagnostics %v, got %v", codes, got)
	}
}

// ExpectPanic asserts that fn panics with a coded error.
func (h *Harness) ExpectPanic(code string, fn func()) {
	h.t.Helper()
	defer func() {
		h.t.Helper()
		r := recover()
		if r == nil {
			h.t.Errorf("expected panic with %s, got none", code)
			return
		}
		err, ok := r.(error)
		if !ok {
			h.t.Errorf("expected panic with %s, got %v", code, r)
			return
		}
		var ce *cerrors.CraftError
		if !errors.As(err, &ce) || ce.Code != code {
			h.t.Errorf("expected panic with %s, got %v", code, err)
		}
	}()
	fn()
}

// ExpectContains asserts that the rendered items contain want.
func (h *Harness) ExpectContains(item any, want string) {
	h.t.Helper()
	html := h.HTML(item)
	if !strings.Contains(html, want) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", want, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered items do not contain s.
func (h *Harness) ExpectNotContains(item any, s string) {
	h.t.Helper()
	html := h.HTML(item)
	if strings.Contains(html, s) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", s, truncate(html, 500))
	}
}

// ExpectElement asserts that the rendered items contain a tag.
func (h *Harness) ExpectElement(item any, tag string) {
	h.t.Helper()
	html := h.HTML(item)
	if !strings.Contains(html, "<"+tag) {
		h.t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the rendered items carry attr="value".
func (h *Harness) ExpectAttribute(item any, attr, value string) {
	h.t.Helper()
	html := h.HTML(item)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		h.t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
