// Package errors provides coded, actionable diagnostics for craft.
//
// Every problem the registry, the crafting engine, the template compiler or
// the CLI can report has a stable code (e.g. "C011") that maps to:
//   - a category (registry, craft, paint, template, config, cli)
//   - a short message
//   - a longer explanation
//
// # Error Categories
//
//   - registry: registration conflicts and unknown names
//   - craft: structural subcomponent and children violations
//   - paint: items that cannot be materialized or inserted
//   - template: template syntax and parameter errors
//   - config: project configuration errors
//   - cli: publishing and command errors
//
// # Usage
//
//	err := errors.New("C011").
//	    WithDetail(`Dialog has no subcomponent "Footer"`).
//	    WithSuggestion("Use one of: Actions, Body, Title")
//
//	fmt.Print(err.Format())
//	// Output:
//	// C011 [craft] Subcomponent handler not found
//	//
//	//   Dialog has no subcomponent "Footer"
//	//
//	//   hint: Use one of: Actions, Body, Title
//
// Template errors carry a location and the surrounding template lines:
//
//	errors.New("C030").WithSource("page.html", src, 3, 7)
//
// A Printer writes diagnostics to the terminal, with or without colors, or
// as one JSON object per line for log pipelines.
package errors
