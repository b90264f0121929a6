package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/craft/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes dom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node and its subtree to a string.
func (r *Renderer) RenderToString(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node and its subtree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *dom.Node) error {
	return r.renderNode(w, node, 0)
}

// RenderNodes renders a list of sibling nodes in order.
func (r *Renderer) RenderNodes(w io.Writer, nodes []*dom.Node) error {
	for _, n := range nodes {
		if err := r.renderNode(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

// OuterHTML returns the compact markup of node including its own tag.
func OuterHTML(node *dom.Node) string {
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderToWriter(&buf, node)
	return buf.String()
}

// InnerHTML returns the compact markup of node's children.
func InnerHTML(node *dom.Node) string {
	if node == nil {
		return ""
	}
	if raw, ok := node.Prop("innerHTML"); ok {
		return fmt.Sprint(raw)
	}
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderNodes(&buf, node.Children())
	return buf.String()
}

// HTML returns the compact markup of a node list.
func HTML(nodes []*dom.Node) string {
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderNodes(&buf, nodes)
	return buf.String()
}

func (r *Renderer) renderNode(w io.Writer, node *dom.Node, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Type {
	case dom.ElementNode:
		return r.renderElement(w, node, depth)
	case dom.TextNode:
		_, err := io.WriteString(w, escapeHTML(node.Data))
		return err
	default:
		return fmt.Errorf("unknown node type: %d", node.Type)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *dom.Node, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	for _, a := range collectAttrs(node) {
		var err error
		if a.bare {
			_, err = fmt.Fprintf(w, " %s", a.name)
		} else {
			_, err = fmt.Fprintf(w, ` %s="%s"`, a.name, escapeAttr(a.value))
		}
		if err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if dom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if raw, ok := node.Prop("innerHTML"); ok && raw != nil {
		if _, err := io.WriteString(w, fmt.Sprint(raw)); err != nil {
			return err
		}
	} else {
		children := node.Children()
		block := len(children) > 0 && !isInlineElement(tag) && hasElementChild(children)
		if r.config.Pretty && block {
			io.WriteString(w, "\n")
		}
		for _, child := range children {
			if err := r.renderNode(w, child, depth+1); err != nil {
				return err
			}
		}
		if r.config.Pretty && block {
			r.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

type attr struct {
	name  string
	value string
	bare  bool
}

// collectAttrs merges class, style, string attributes and stored
// properties into one list sorted by name. Properties win over attributes
// of the same name.
func collectAttrs(node *dom.Node) []attr {
	var out []attr
	index := make(map[string]int)
	set := func(a attr) {
		if i, ok := index[a.name]; ok {
			out[i] = a
			return
		}
		index[a.name] = len(out)
		out = append(out, a)
	}

	if v, ok := node.GetAttribute("class"); ok {
		set(attr{name: "class", value: v})
	}
	if v, ok := node.GetAttribute("style"); ok && v != "" {
		set(attr{name: "style", value: v})
	}
	for _, a := range node.Attributes() {
		if dom.IsBooleanAttr(a.Key) && (a.Value == "" || a.Value == a.Key) {
			set(attr{name: a.Key, bare: true})
			continue
		}
		set(attr{name: a.Key, value: a.Value})
	}
	for _, name := range node.PropNames() {
		if name == "innerHTML" {
			continue
		}
		value, _ := node.Prop(name)
		key := dom.AttrName(name)
		a, ok := propAttr(key, value)
		if !ok {
			if i, exists := index[key]; exists && isFalse(value) {
				// A false boolean property clears the attribute.
				out[i].name = ""
			}
			continue
		}
		set(a)
	}

	filtered := out[:0]
	for _, a := range out {
		if a.name != "" {
			filtered = append(filtered, a)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].name < filtered[j].name })
	return filtered
}

// propAttr converts a property value to its attribute form. Nil, false
// boolean attributes, functions and structured objects have none.
func propAttr(key string, value any) (attr, bool) {
	switch v := value.(type) {
	case nil:
		return attr{}, false
	case bool:
		if dom.IsBooleanAttr(key) {
			return attr{name: key, bare: true}, v
		}
		return attr{name: key, value: strconv.FormatBool(v)}, true
	case dom.Object:
		return attr{}, false
	}
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return attr{}, false
	}
	return attr{name: key, value: attrToString(value)}, true
}

func isFalse(value any) bool {
	b, ok := value.(bool)
	return ok && !b
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func hasElementChild(children []*dom.Node) bool {
	for _, c := range children {
		if c.IsElement() {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
