// Package crafttest provides testing helpers for crafted components.
//
// A Harness owns a private registry and engine, so tests never touch the
// package-level defaults and can run in parallel. The engine is strict by
// default: any diagnostic panics, which fails the test at the offending
// call.
//
// # Quick Start
//
//	func TestConfirmDialog(t *testing.T) {
//	    h := crafttest.New(t, crafttest.WithUI())
//	    res := h.Craft("Dialog", nil, h.Craft(".Title", nil, "Sure?"))
//	    h.ExpectContains(res, `aria-labelledby=`)
//	}
//
// # Diagnostics
//
// Lenient harnesses record diagnostics instead of panicking:
//
//	h := crafttest.New(t, crafttest.Lenient())
//	h.Craft("Leaf", nil, "oops")
//	h.ExpectDiagnostics("C013")
//
// In a strict harness, ExpectPanic checks which coded error a call raises:
//
//	h.ExpectPanic("C017", func() { h.Paint(".Title", nil) })
package crafttest
