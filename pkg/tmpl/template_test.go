package tmpl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/dom"
)

type call struct {
	Target   any
	Props    map[string]any
	Children []any
}

type recorder struct {
	calls []*call
}

func (r *recorder) build(target any, props map[string]any, children ...any) any {
	c := &call{Target: target, Props: props, Children: children}
	r.calls = append(r.calls, c)
	return c
}

func execute(t *testing.T, src string, params map[string]any) ([]any, *recorder) {
	t.Helper()
	tpl, err := Compile(src)
	require.NoError(t, err)
	rec := &recorder{}
	roots, err := tpl.Execute(rec.build, params)
	require.NoError(t, err)
	return roots, rec
}

func TestNativeTree(t *testing.T) {
	roots, rec := execute(t, `<a href="#" class="x" data-t="1">hi<span>there</span></a>`, nil)

	require.Len(t, roots, 1)
	a := roots[0].(*call)
	assert.Equal(t, "a", a.Target)
	assert.Equal(t, map[string]any{"href": "#", "class": "x", "data-t": "1"}, a.Props)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "hi", a.Children[0])
	span := a.Children[1].(*call)
	assert.Equal(t, "span", span.Target)
	assert.Equal(t, []any{"there"}, span.Children)

	// Children are built before their parent.
	require.Len(t, rec.calls, 2)
	assert.Same(t, span, rec.calls[0])
	assert.Same(t, a, rec.calls[1])
}

func TestComponentNamesKeepCase(t *testing.T) {
	roots, _ := execute(t, `
		<Dialog>
			<.Title>Hello</.Title>
			<Dialog.Body>Text</Dialog.Body>
		</Dialog>
	`, nil)

	require.Len(t, roots, 1)
	dialog := roots[0].(*call)
	assert.Equal(t, "Dialog", dialog.Target)
	assert.Nil(t, dialog.Props)
	require.Len(t, dialog.Children, 2)
	assert.Equal(t, ".Title", dialog.Children[0].(*call).Target)
	assert.Equal(t, "Dialog.Body", dialog.Children[1].(*call).Target)
}

func TestParams(t *testing.T) {
	handler := func() {}
	roots, _ := execute(t, `<Button variant="#param:v" onclick="#param:h" disabled>OK</Button>`,
		map[string]any{"v": "danger", "h": handler})

	b := roots[0].(*call)
	assert.Equal(t, "danger", b.Props["variant"])
	assert.NotNil(t, b.Props["onclick"])
	assert.Equal(t, true, b.Props["disabled"])
}

func TestEmptyValues(t *testing.T) {
	roots, _ := execute(t, `<img alt="" class="" data-x="" hidden="">`, nil)

	img := roots[0].(*call)
	assert.Equal(t, "", img.Props["alt"])
	assert.Equal(t, "", img.Props["class"])
	assert.Equal(t, "", img.Props["data-x"])
	assert.Equal(t, true, img.Props["hidden"])
}

func TestJSONAttributes(t *testing.T) {
	roots, _ := execute(t, `<div data-n={5} list={[1,2,3]} cfg={{"a": 1}} name={"#param:n"}/>`,
		map[string]any{"n": "bound"})

	div := roots[0].(*call)
	assert.Equal(t, float64(5), div.Props["data-n"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, div.Props["list"])
	assert.Equal(t, map[string]any{"a": float64(1)}, div.Props["cfg"])
	assert.Equal(t, "bound", div.Props["name"])
}

func TestBindParam(t *testing.T) {
	items := []any{"a", "b"}
	roots, _ := execute(t, `<ul><li>first</li><bindparam key="items"/></ul>`, map[string]any{"items": items})

	ul := roots[0].(*call)
	require.Len(t, ul.Children, 2)
	assert.Equal(t, items, ul.Children[1])
}

func TestBindParamNilValue(t *testing.T) {
	roots, _ := execute(t, `<p><bindparam key="maybe"/></p>`, map[string]any{"maybe": nil})
	assert.Equal(t, []any{nil}, roots[0].(*call).Children)
}

func TestDynamicComponent(t *testing.T) {
	type ctor struct{ name string }
	target := &ctor{name: "Card"}
	roots, _ := execute(t, `<component is="#param:t" title="T">body</component>`, map[string]any{"t": target})

	c := roots[0].(*call)
	assert.Same(t, target, c.Target)
	assert.Equal(t, map[string]any{"title": "T"}, c.Props)
	assert.Equal(t, []any{"body"}, c.Children)
}

func TestSpread(t *testing.T) {
	roots, _ := execute(t, `<div id="a" craft-spread="#param:p" role="main"/>`,
		map[string]any{"p": map[string]any{"id": "b", "data-x": 1}})

	div := roots[0].(*call)
	assert.Equal(t, map[string]any{"id": "b", "data-x": 1, "role": "main"}, div.Props)
}

func TestSpreadRejectsNonMap(t *testing.T) {
	tpl := MustCompile(`<div craft-spread="#param:p"/>`)
	_, err := tpl.Execute((&recorder{}).build, map[string]any{"p": 3})
	require.Error(t, err)
	assert.Equal(t, "C031", cerrors.Code(err))
}

func TestStyleString(t *testing.T) {
	roots, _ := execute(t, `<div style="color: red; margin-top: #param:m"></div>`, map[string]any{"m": "4px"})

	div := roots[0].(*call)
	assert.Equal(t, dom.Object{"color": "red", "marginTop": "4px"}, div.Props["style"])
}

func TestVoidElements(t *testing.T) {
	roots, _ := execute(t, `<p>a<br>b<input name="q"></p>`, nil)

	p := roots[0].(*call)
	require.Len(t, p.Children, 4)
	assert.Equal(t, "a", p.Children[0])
	assert.Equal(t, "br", p.Children[1].(*call).Target)
	assert.Equal(t, "b", p.Children[2])
	assert.Equal(t, "input", p.Children[3].(*call).Target)
}

func TestWhitespace(t *testing.T) {
	roots, _ := execute(t, "<p>\n    Hello <b>world</b>!\n</p>", nil)

	p := roots[0].(*call)
	require.Len(t, p.Children, 3)
	assert.Equal(t, "Hello ", p.Children[0])
	assert.Equal(t, "!", p.Children[2])

	roots, _ = execute(t, "<p><b>a</b> <i>b</i>\n  <u>c</u></p>", nil)
	p = roots[0].(*call)
	require.Len(t, p.Children, 4)
	assert.Equal(t, " ", p.Children[1])
	assert.Equal(t, "u", p.Children[3].(*call).Target)
}

func TestMultipleRoots(t *testing.T) {
	roots, _ := execute(t, "<h1>A</h1>\n<h2>B</h2> tail", nil)

	require.Len(t, roots, 3)
	assert.Equal(t, "h1", roots[0].(*call).Target)
	assert.Equal(t, "h2", roots[1].(*call).Target)
	assert.Equal(t, " tail", roots[2])
}

func TestCommentsIgnored(t *testing.T) {
	roots, _ := execute(t, `<div><!-- note -->x</div>`, nil)
	assert.Equal(t, []any{"x"}, roots[0].(*call).Children)
}

func TestMissingParam(t *testing.T) {
	tpl := MustCompile("<div>\n  <span title=\"#param:missing\"/>\n</div>")
	_, err := tpl.Execute((&recorder{}).build, nil)

	require.Error(t, err)
	var ce *cerrors.CraftError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "C031", ce.Code)
	assert.Equal(t, "missing", ce.Subject)
	require.NotNil(t, ce.Location)
	assert.Equal(t, 2, ce.Location.Line)
	assert.Equal(t, 3, ce.Location.Column)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"mismatched end", "<div>\n<span></div>", 2},
		{"stray end", "</div>", 1},
		{"unclosed", "<div>\n  <p>x</p>", 1},
		{"bindparam not self-closing", `<bindparam key="a"></bindparam>`, 1},
		{"bindparam without key", `<bindparam/>`, 1},
		{"component without is", `<component/>`, 1},
		{"component literal is", `<component is="Card"/>`, 1},
		{"bad json", `<div a={[1,}/>`, 1},
		{"bad style", "\n<div style=\"color red\"/>", 2},
		{"spread literal", `<div craft-spread="x"/>`, 1},
		{"doctype", `<!DOCTYPE html>`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileNamed("page.html", tt.src)
			require.Error(t, err)

			var ce *cerrors.CraftError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "C030", ce.Code)
			require.NotNil(t, ce.Location)
			assert.Equal(t, "page.html", ce.Location.File)
			assert.Equal(t, tt.line, ce.Location.Line)
		})
	}
}

func TestParamsList(t *testing.T) {
	tpl := MustCompile(`<component is="#param:t" craft-spread="#param:p" style="color: #param:c"><bindparam key="kids"/></component>`)
	assert.Equal(t, []string{"c", "kids", "p", "t"}, tpl.Params())
}

func TestShorthandOnlyRewritesTags(t *testing.T) {
	roots, _ := execute(t, `<p>3 <.5 and a.b</p>`, nil)
	assert.Equal(t, []any{"3 <.5 and a.b"}, roots[0].(*call).Children)
}
