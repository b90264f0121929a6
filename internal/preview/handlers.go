package preview

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/internal/dev"
	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/render"
	"github.com/vango-dev/craft/pkg/tmpl"
)

// maxBodyBytes caps POST /paint bodies.
const maxBodyBytes = 1 << 20

// PaintRequest is the JSON or msgpack body of POST /paint.
type PaintRequest struct {
	Template string         `json:"template" msgpack:"template"`
	Params   map[string]any `json:"params,omitempty" msgpack:"params,omitempty"`
}

const galleryCSS = `body{font-family:system-ui,sans-serif;margin:2rem}` +
	`.gallery li{margin:.25rem 0}.subcomponents{color:#555;font-size:.9em}`

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	e := s.engine
	reg := e.Registry()

	var items []any
	for _, name := range reg.Names() {
		var subs []any
		for _, sub := range reg.Subcomponents(name) {
			subs = append(subs, e.Craft("li", nil, e.Craft("code", nil, sub.FullName)))
		}
		var subList any
		if len(subs) > 0 {
			subList = e.Craft("ul", map[string]any{"class": "subcomponents"}, subs)
		}
		link := e.Craft("a", map[string]any{"href": "/components/" + url.PathEscape(name)}, name)
		items = append(items, e.Craft("li", map[string]any{"data-component": name}, link, subList))
	}

	var list any = e.Craft("p", nil, "No components registered.")
	if len(items) > 0 {
		list = e.Craft("ul", map[string]any{"class": "gallery"}, items)
	}
	body := e.Materialize(e.Craft("h1", nil, s.title), list)
	s.page(w, r, s.title, body, http.StatusOK)
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.engine.Registry().Get(name) == nil {
		http.Error(w, "unknown component "+name, http.StatusNotFound)
		return
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("craft.component", name))

	query := r.URL.Query()
	var children []any
	if text := query.Get("text"); text != "" {
		children = append(children, text)
	}
	query.Del("text")

	res := s.engine.Paint(name, queryParams(query), children...)
	if res.Element == nil {
		http.Error(w, "component "+name+" produced no element", http.StatusUnprocessableEntity)
		return
	}
	s.page(w, r, s.title+" - "+name, []*dom.Node{res.Element}, http.StatusOK)
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	req, err := decodePaintRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Template == "" {
		http.Error(w, "empty template", http.StatusBadRequest)
		return
	}

	rs, err := s.engine.PaintHTML(req.Template, req.Params)
	if err != nil {
		s.templateError(w, r, err)
		return
	}
	templ.Handler(render.Templ(engine.Nodes(rs)...)).ServeHTTP(w, r)
}

// decodePaintRequest reads the body by content type. Template bodies take
// their parameters from the query string.
func decodePaintRequest(w http.ResponseWriter, r *http.Request) (PaintRequest, error) {
	var req PaintRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			return req, errors.New("invalid JSON body: " + err.Error())
		}
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		if err := msgpack.NewDecoder(body).Decode(&req); err != nil {
			return req, errors.New("invalid msgpack body: " + err.Error())
		}
	default:
		src, err := io.ReadAll(body)
		if err != nil {
			return req, err
		}
		req.Template = string(src)
		req.Params = queryParams(r.URL.Query())
	}
	return req, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.templates == "" {
		http.NotFound(w, r)
		return
	}
	rel, err := pagePath(chi.URLParam(r, "*"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file := filepath.Join(s.templates, filepath.FromSlash(rel))

	src, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("failed to read page", "file", file, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("craft.page", rel))

	t, err := tmpl.CompileNamed(rel, string(src))
	if err != nil {
		s.templateError(w, r, err)
		return
	}
	rs, err := s.engine.PaintTemplate(t, queryParams(r.URL.Query()))
	if err != nil {
		s.templateError(w, r, err)
		return
	}
	s.page(w, r, s.title+" - "+rel, engine.Nodes(rs), http.StatusOK)
}

// templateError answers 400 with the compact diagnostic and shows it in
// the dev overlay.
func (s *Server) templateError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	var ce *cerrors.CraftError
	if errors.As(err, &ce) {
		msg = ce.FormatCompact()
	}
	trace.SpanFromContext(r.Context()).RecordError(err)
	s.logger.Warn("template failed", "error", msg, "path", r.URL.Path)
	if s.reload != nil {
		s.reload.NotifyError(msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

// page renders body as a full document.
func (s *Server) page(w http.ResponseWriter, r *http.Request, title string, body []*dom.Node, status int) {
	data := render.PageData{
		Title:  title,
		Body:   body,
		Styles: []string{galleryCSS},
	}
	if s.reload != nil {
		data.Scripts = append(data.Scripts, render.ScriptTag{Inline: dev.DevClientJS})
	}
	templ.Handler(render.PageComponent(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

// queryParams converts query values to a parameter map. Repeated keys
// become string slices.
func queryParams(q url.Values) map[string]any {
	out := make(map[string]any, len(q))
	for k, vs := range q {
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	return out
}
