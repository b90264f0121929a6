// Package tmpl compiles HTML-like templates into build calls.
//
// A template is parsed once by Compile and executed any number of times
// against a BuildFunc and a parameter map. Execute calls build for every
// tag, children first, and returns the values built for the root tags and
// root text.
//
//	t, err := tmpl.Compile(`
//	    <Dialog class="wide">
//	        <.Title>Delete <bindparam key="file"/>?</.Title>
//	        <.Actions><Button variant="#param:variant">OK</Button></.Actions>
//	    </Dialog>`)
//	roots, err := t.Execute(build, map[string]any{"file": "a.txt", "variant": "danger"})
//
// Binding rules:
//
//   - Tag names are passed through: native tags, component names, dotted
//     subcomponent names and shorthand ".Name" tags.
//   - <component is="#param:x"> takes its target from a parameter.
//   - An attribute value "#param:key" is replaced by params[key]. JSON
//     values written as attr={...} are decoded. A bare attribute is true.
//   - craft-spread="#param:key" merges a map of properties.
//   - A style string is parsed into a structured style object; its values
//     may be parameters too.
//   - <bindparam key="k"/> splices params[k] in as a child.
//   - Whitespace runs that contain a newline are dropped at the edges of
//     text; other whitespace is kept.
//
// Referencing a parameter missing from the map is an error. A parameter
// present with a nil value is passed as nil.
package tmpl
