// Package engine turns build calls into component instances and dom nodes.
//
// Craft resolves a target, in order, as a component type, a registered
// component name, a shorthand subcomponent (".Title"), a registered
// subcomponent ("Dialog.Title") and finally a native tag name. The result
// is a Result: an instance, an element or a subcomponent reference.
//
// Component children are processed in one of two modes. If any child,
// at any slice depth, is a subcomponent reference, every child must be
// one and each is handed to its handler in order. Otherwise the children
// go to the instance's SetChildren in a single call, provided the type
// allows children. Render is then called once, and the aria-, data- and
// style properties and the class tokens are applied to the root.
//
// Materialize flattens results, nodes, strings and slices into an
// insertion-ready node list. Paint is Craft followed by Materialize, except
// that subcomponent references are returned unchanged.
//
// Template misuse never aborts a tree. The offending piece is dropped and a
// coded diagnostic is logged, counted and passed to the diagnostic handler.
// In strict mode the diagnostic panics instead.
//
// # Usage
//
//	e := engine.New(engine.WithRegistry(reg))
//	res := e.Paint("Dialog", nil,
//	    e.Craft(".Title", nil, "Delete file?"),
//	    e.Craft(".Body", nil, "This cannot be undone."),
//	)
//	e.RenderInto(page, res, engine.RenderOptions{Empty: true})
package engine
