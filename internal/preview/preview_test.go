package preview

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/craft/internal/dev"
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/registry"
	"github.com/vango-dev/craft/pkg/ui"
)

type fixture struct {
	server    *Server
	templates string
}

func newFixture(t *testing.T, strict bool, reload *dev.ReloadServer) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	promReg := prometheus.NewRegistry()
	reg := registry.New(registry.WithLogger(logger))
	eng := engine.New(
		engine.WithRegistry(reg),
		engine.WithLogger(logger),
		engine.WithStrict(strict),
		engine.WithMetrics(engine.NewMetrics(engine.WithPrometheusRegistry(promReg))),
	)
	require.NoError(t, ui.Register(reg, eng))
	reg.MustRegister(&component.Type{
		Name: "Broken",
		New: func(component.Options) component.Component {
			return &broken{Base: component.NewBase("div")}
		},
	}, "")

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "intro.html"),
		[]byte(`<Card title="#param:title"><p>Welcome</p></Card>`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.html"), []byte(`<p>`), 0644))

	return &fixture{
		server: New(Options{
			Engine:       eng,
			Logger:       logger,
			TemplatesDir: dir,
			Reload:       reload,
			Gatherer:     promReg,
			Registerer:   promReg,
		}),
		templates: dir,
	}
}

// broken takes no children, so any child raises a diagnostic.
type broken struct{ component.Base }

func (b *broken) Render() component.Component { return b }

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func TestGallery(t *testing.T) {
	f := newFixture(t, false, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/components/Dialog">Dialog</a>`)
	assert.Contains(t, body, `<code>Dialog.Title</code>`)
	assert.Contains(t, body, `<code>Menu.Item</code>`)
	assert.NotContains(t, body, dev.ReloadPath)
}

func TestComponent(t *testing.T) {
	f := newFixture(t, false, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/components/Button?variant=primary&text=Save", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<button class="btn btn-primary" type="button">Save</button>`)
	assert.Contains(t, rec.Body.String(), "<title>craft - Button</title>")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/components/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStrictDiagnosticIsUnprocessable(t *testing.T) {
	f := newFixture(t, true, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/components/Broken?text=x", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "C013")
}

func TestPaintBodies(t *testing.T) {
	f := newFixture(t, false, nil)
	want := `<button class="btn btn-danger" type="button">Go</button>`

	t.Run("html", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/paint?v=danger",
			strings.NewReader(`<Button variant="#param:v">Go</Button>`))
		req.Header.Set("Content-Type", "text/html")
		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(PaintRequest{
			Template: `<Button variant="#param:v">Go</Button>`,
			Params:   map[string]any{"v": "danger"},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/paint", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("msgpack", func(t *testing.T) {
		data, err := msgpack.Marshal(PaintRequest{
			Template: `<Button variant="#param:v">Go</Button>`,
			Params:   map[string]any{"v": "danger"},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/paint", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/msgpack")
		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/paint", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/paint", strings.NewReader(""))
		assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
	})

	t.Run("syntax error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/paint", strings.NewReader(`<div>`))
		rec := f.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "C030")
	})
}

func TestPages(t *testing.T) {
	hub := dev.NewReloadServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f := newFixture(t, false, hub)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/pages/docs/intro?title=Hello", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h3>Hello</h3>")
	assert.Contains(t, body, "<title>craft - docs/intro.html</title>")
	assert.Contains(t, body, dev.ReloadPath)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/pages/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/pages/../../etc/passwd", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/pages/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad.html")
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, false, nil)
	f.do(httptest.NewRequest(http.MethodGet, "/components/Card?title=x", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "craft_engine_paints_total 1")
	assert.Contains(t, body, `craft_preview_requests_total{route="/components/{name}",status="200"} 1`)
}
