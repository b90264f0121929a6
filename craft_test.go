package craft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/craft/pkg/dom"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/registry"
	"github.com/vango-dev/craft/pkg/ui"
)

// isolate swaps in a private engine for the duration of the test.
func isolate(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(engine.WithRegistry(registry.New()))
	prev := SetDefault(e)
	t.Cleanup(func() { SetDefault(prev) })
	return e
}

func TestDefaultUsesDefaultRegistry(t *testing.T) {
	assert.Same(t, registry.Default, Default().Registry())
}

func TestFacade(t *testing.T) {
	e := isolate(t)
	for _, typ := range ui.Types(e) {
		MustRegister(typ, "")
	}
	require.Error(t, Register(ui.CardType(e), ""))

	res := Paint("Button", Props{"variant": "primary"}, "Save")
	require.Equal(t, engine.ResultElement, res.Kind)
	assert.Equal(t, `<button class="btn btn-primary" type="button">Save</button>`, HTML(res))

	ref := Craft(".Title", nil, "x")
	assert.Equal(t, engine.ResultRef, ref.Kind)

	rs, err := PaintHTML(`<Card title="#param:t"><p>hi</p></Card>`, map[string]any{"t": "Stats"})
	require.NoError(t, err)
	assert.Contains(t, HTML(rs), "<h3>Stats</h3>")

	rs, err = CraftHTML(`<i>a</i><b>b</b>`, nil)
	require.NoError(t, err)
	assert.Len(t, rs, 2)

	require.NoError(t, Unregister("Card"))
	assert.Error(t, Unregister("Card"))
}

func TestRenderInto(t *testing.T) {
	isolate(t)
	host := dom.CreateElement("main")
	host.AppendChild(dom.CreateTextNode("old"))

	RenderInto(host, []any{Craft("p", nil, "new")}, RenderOptions{Empty: true})
	assert.Equal(t, `<main><p>new</p></main>`, HTML(host))
	assert.Len(t, Materialize("a", nil, "b"), 2)
}
