// Package templates provides project scaffolding for craft init.
//
// # Available Templates
//
//   - minimal: craft.json and a single page
//   - gallery: craft.yaml, a page per reference component and a .env example
//
// # Usage
//
//	tmpl, err := templates.Get("gallery")
//	if err != nil {
//	    return err
//	}
//	if err := tmpl.Create(projectDir, templates.Config{ProjectName: "docs"}); err != nil {
//	    return err
//	}
//
// # Template Variables
//
// Files are text/template sources executed with Config. Page templates
// use craft's own #param: syntax, which text/template leaves alone.
package templates
