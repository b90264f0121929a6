// Package component defines the contract between the crafting engine and
// the components it instantiates.
//
// A component is described by a Type: a name, a constructor taking an
// Options bag, whether it accepts arbitrary children, and a table of
// subcomponent handlers keyed by short name. Subcomponent handlers are
// typed functions bound once at declaration time:
//
//	var DialogType = &component.Type{
//	    Name: "Dialog",
//	    New:  func(o component.Options) component.Component { return newDialog(o) },
//	    Subcomponents: map[string]component.Handler{
//	        "Title": component.On((*Dialog).setTitle),
//	        "Body":  component.On((*Dialog).setBody),
//	    },
//	}
//
// A Ref is the inert record produced for a subcomponent tag such as
// <Dialog.Title> or the shorthand <.Title>. The owning component receives
// it through its handler and decides what to do with it.
package component
