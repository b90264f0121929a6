package tmpl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/wavetermdev/htmltoken"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/dom"
)

const (
	// ParamPrefix marks an attribute value taken from the parameters.
	ParamPrefix = "#param:"

	// BindParamTag splices a parameter in as a child.
	BindParamTag = "bindparam"

	// DynamicTag takes its target from its "is" attribute.
	DynamicTag = "component"

	// SpreadAttr merges a parameter map into the properties.
	SpreadAttr = "craft-spread"

	// shorthandTag replaces the leading "." of shorthand tags, which the
	// tokenizer would otherwise read as text.
	shorthandTag = "craft-shorthand."
)

var shorthandRe = regexp.MustCompile(`<(/?)\.([A-Za-z])`)

// emptyStringAttrs keep "" for an empty value instead of becoming true.
var emptyStringAttrs = map[string]bool{
	"class":     true,
	"className": true,
	"style":     true,
	"alt":       true,
	"title":     true,
	"value":     true,
}

// BuildFunc is called once per tag with the evaluated target, properties
// and children. The value it returns becomes a child of the enclosing tag.
type BuildFunc func(target any, props map[string]any, children ...any) any

// Template is a compiled template. It is safe for concurrent use.
type Template struct {
	name  string
	src   string
	roots []*node
}

type nodeKind uint8

const (
	textNode nodeKind = iota
	tagNode
	bindNode
)

type node struct {
	kind     nodeKind
	tag      string // tag name, or param key for dynamic targets
	dynamic  bool
	text     string // text content, or param key for bindparam
	attrs    []attr
	children []*node
	line     int
	col      int
}

type attr struct {
	key   string
	value any // string, decoded JSON, paramRef or styleValue
}

type paramRef string

type styleValue dom.Object

// Compile parses src.
func Compile(src string) (*Template, error) {
	return CompileNamed("template", src)
}

// CompileNamed parses src, naming it in errors (usually a file path).
func CompileNamed(name, src string) (*Template, error) {
	p := &parser{name: name, src: src}
	roots, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Template{name: name, src: src, roots: roots}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Template {
	t, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Params returns the parameter keys the template references, sorted.
func (t *Template) Params() []string {
	seen := make(map[string]bool)
	var walk func([]*node)
	walk = func(nodes []*node) {
		for _, n := range nodes {
			switch n.kind {
			case bindNode:
				seen[n.text] = true
			case tagNode:
				if n.dynamic {
					seen[n.tag] = true
				}
				for _, a := range n.attrs {
					collectParams(a.value, seen)
				}
				walk(n.children)
			}
		}
	}
	walk(t.roots)
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collectParams(v any, seen map[string]bool) {
	switch x := v.(type) {
	case paramRef:
		seen[string(x)] = true
	case styleValue:
		for _, sv := range x {
			collectParams(sv, seen)
		}
	}
}

// Execute evaluates the template. It returns one value per root tag or
// root text run.
func (t *Template) Execute(build BuildFunc, params map[string]any) ([]any, error) {
	ex := &executor{t: t, build: build, params: params}
	return ex.nodes(t.roots)
}

type executor struct {
	t      *Template
	build  BuildFunc
	params map[string]any
}

func (ex *executor) nodes(nodes []*node) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case textNode:
			out = append(out, n.text)
		case bindNode:
			v, err := ex.param(n.text, n)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		case tagNode:
			v, err := ex.tag(n)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (ex *executor) tag(n *node) (any, error) {
	children, err := ex.nodes(n.children)
	if err != nil {
		return nil, err
	}

	var target any = n.tag
	if n.dynamic {
		if target, err = ex.param(n.tag, n); err != nil {
			return nil, err
		}
	}

	var props map[string]any
	if len(n.attrs) > 0 {
		props = make(map[string]any, len(n.attrs))
	}
	for _, a := range n.attrs {
		if a.key == SpreadAttr {
			v, err := ex.value(a.value, n)
			if err != nil {
				return nil, err
			}
			spread, ok := toPropMap(v)
			if !ok && v != nil {
				return nil, ex.errorAt(cerrors.New("C031"), n).
					WithDetailf("%s expects a property map, got %T.", SpreadAttr, v)
			}
			for k, sv := range spread {
				props[k] = sv
			}
			continue
		}
		v, err := ex.value(a.value, n)
		if err != nil {
			return nil, err
		}
		props[a.key] = v
	}
	return ex.build(target, props, children...), nil
}

func (ex *executor) value(v any, n *node) (any, error) {
	switch x := v.(type) {
	case paramRef:
		return ex.param(string(x), n)
	case styleValue:
		out := make(dom.Object, len(x))
		for k, sv := range x {
			val, err := ex.value(sv, n)
			if err != nil {
				return nil, err
			}
			out[k] = val
		}
		return out, nil
	default:
		return v, nil
	}
}

func (ex *executor) param(key string, n *node) (any, error) {
	v, ok := ex.params[key]
	if !ok {
		return nil, ex.errorAt(cerrors.New("C031").WithSubject(key), n)
	}
	return v, nil
}

func (ex *executor) errorAt(err *cerrors.CraftError, n *node) *cerrors.CraftError {
	return err.WithSource(ex.t.name, ex.t.src, n.line, n.col)
}

func toPropMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// parser builds the node tree from htmltoken tokens.
type parser struct {
	name   string
	src    string
	cursor int
	stack  []*node
	roots  []*node
}

func (p *parser) parse() ([]*node, error) {
	z := htmltoken.NewTokenizer(strings.NewReader(shorthandRe.ReplaceAllString(p.src, "<$1"+shorthandTag+"$2")))
	for {
		tt := z.Next()
		tok := z.Token()
		switch tt {
		case htmltoken.StartTagToken:
			name := tagName(tok.Data)
			n, err := p.tagNode(tok, name, p.locate("<"+name))
			if err != nil {
				return nil, err
			}
			if n.kind == bindNode {
				return nil, p.syntaxError(n, "<%s> must be self-closing", BindParamTag)
			}
			p.append(n)
			if !dom.IsVoidElement(name) {
				p.stack = append(p.stack, n)
			}

		case htmltoken.SelfClosingTagToken:
			name := tagName(tok.Data)
			n, err := p.tagNode(tok, name, p.locate("<"+name))
			if err != nil {
				return nil, err
			}
			p.append(n)

		case htmltoken.EndTagToken:
			name := tagName(tok.Data)
			off := p.locate("</" + name)
			if dom.IsVoidElement(name) {
				continue
			}
			if len(p.stack) == 0 {
				return nil, p.syntaxErrorAt(off, "end tag </%s> without start tag", name)
			}
			top := p.stack[len(p.stack)-1]
			if topName(top) != name {
				return nil, p.syntaxErrorAt(off, "end tag </%s> does not match <%s>", name, topName(top))
			}
			p.stack = p.stack[:len(p.stack)-1]

		case htmltoken.TextToken:
			if text := collapseText(tok.Data); text != "" {
				p.append(&node{kind: textNode, text: text})
			}

		case htmltoken.CommentToken:
			continue

		case htmltoken.DoctypeToken:
			return nil, p.syntaxErrorAt(p.cursor, "doctype not supported")

		case htmltoken.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if len(p.stack) > 0 {
					open := p.stack[len(p.stack)-1]
					return nil, p.syntaxError(open, "unclosed <%s>", topName(open))
				}
				return p.roots, nil
			}
			return nil, p.syntaxErrorAt(p.cursor, "%v", z.Err())
		}
	}
}

func (p *parser) append(n *node) {
	if len(p.stack) == 0 {
		p.roots = append(p.roots, n)
		return
	}
	parent := p.stack[len(p.stack)-1]
	parent.children = append(parent.children, n)
}

func (p *parser) tagNode(tok htmltoken.Token, name string, off int) (*node, error) {
	line, col := lineCol(p.src, off)
	n := &node{kind: tagNode, tag: name, line: line, col: col}

	if name == BindParamTag {
		key := attrString(tok, "key")
		if key == "" {
			return nil, p.syntaxError(n, "<%s> needs a key", BindParamTag)
		}
		n.kind = bindNode
		n.text = key
		return n, nil
	}

	for _, a := range tok.Attr {
		if a.Key == "" {
			continue
		}
		if name == DynamicTag && a.Key == "is" {
			key, ok := strings.CutPrefix(a.Val, ParamPrefix)
			if !ok || key == "" {
				return nil, p.syntaxError(n, `<%s is> must be "%skey"`, DynamicTag, ParamPrefix)
			}
			n.tag = key
			n.dynamic = true
			continue
		}
		v, err := p.attrValue(a.Key, a.Val, a.IsJson)
		if err != nil {
			return nil, p.syntaxError(n, "attribute %s: %v", a.Key, err)
		}
		if a.Key == SpreadAttr {
			if _, ok := v.(paramRef); !ok {
				return nil, p.syntaxError(n, `%s must be "%skey"`, SpreadAttr, ParamPrefix)
			}
		}
		n.attrs = append(n.attrs, attr{key: a.Key, value: v})
	}
	if name == DynamicTag && !n.dynamic {
		return nil, p.syntaxError(n, "<%s> needs an is attribute", DynamicTag)
	}
	return n, nil
}

func (p *parser) attrValue(key, val string, isJSON bool) (any, error) {
	if isJSON {
		var decoded any
		if err := json.Unmarshal([]byte(val), &decoded); err != nil {
			return nil, err
		}
		s, ok := decoded.(string)
		if !ok {
			return decoded, nil
		}
		val = s
	}
	if k, ok := strings.CutPrefix(val, ParamPrefix); ok {
		return paramRef(k), nil
	}
	if val == "" {
		if emptyStringAttrs[key] || strings.HasPrefix(key, "aria-") || strings.HasPrefix(key, "data-") {
			return "", nil
		}
		return true, nil
	}
	if key == "style" {
		style, err := dom.ParseStyle(val)
		if err != nil {
			return nil, err
		}
		sv := make(styleValue, len(style))
		for k, decl := range style {
			if s, ok := decl.(string); ok {
				if pk, ok := strings.CutPrefix(s, ParamPrefix); ok {
					sv[k] = paramRef(pk)
					continue
				}
			}
			sv[k] = decl
		}
		return sv, nil
	}
	return val, nil
}

// locate advances the cursor to the next occurrence of needle and returns
// its byte offset in the source.
func (p *parser) locate(needle string) int {
	if i := strings.Index(p.src[p.cursor:], needle); i >= 0 {
		p.cursor += i
		off := p.cursor
		p.cursor += len(needle)
		return off
	}
	return p.cursor
}

func (p *parser) syntaxError(n *node, format string, args ...any) *cerrors.CraftError {
	return cerrors.New("C030").
		WithSubject(fmt.Sprintf(format, args...)).
		WithSource(p.name, p.src, n.line, n.col)
}

func (p *parser) syntaxErrorAt(off int, format string, args ...any) *cerrors.CraftError {
	line, col := lineCol(p.src, off)
	return p.syntaxError(&node{line: line, col: col}, format, args...)
}

func tagName(data string) string {
	if short, ok := strings.CutPrefix(data, shorthandTag); ok {
		return "." + short
	}
	return data
}

func topName(n *node) string {
	if n.dynamic {
		return DynamicTag
	}
	return n.tag
}

func attrString(tok htmltoken.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// lineCol converts a byte offset to 1-based line and column.
func lineCol(src string, off int) (int, int) {
	if off > len(src) {
		off = len(src)
	}
	before := src[:off]
	line := strings.Count(before, "\n") + 1
	col := off - strings.LastIndex(before, "\n")
	return line, col
}

// collapseText drops whitespace runs containing a newline at either edge
// of s. Whitespace-only text without a newline collapses to one space.
func collapseText(s string) string {
	if strings.TrimSpace(s) == "" {
		if strings.ContainsAny(s, "\n\r") || s == "" {
			return ""
		}
		return " "
	}
	lead := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	if strings.ContainsAny(s[:lead], "\n\r") {
		s = s[lead:]
	}
	trimmed := strings.TrimRight(s, " \t\r\n")
	if strings.ContainsAny(s[len(trimmed):], "\n\r") {
		s = trimmed
	}
	return s
}
