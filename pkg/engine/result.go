package engine

import (
	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
)

// ResultKind identifies the variant held by a Result.
type ResultKind uint8

const (
	ResultNone ResultKind = iota
	ResultInstance
	ResultElement
	ResultRef
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultInstance:
		return "instance"
	case ResultElement:
		return "element"
	case ResultRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Result is the outcome of Craft or Paint. Exactly one payload field is
// set, selected by Kind.
type Result struct {
	Kind     ResultKind
	Instance component.Component
	Element  *dom.Node
	Ref      *component.Ref
}

// InstanceResult wraps a component instance.
func InstanceResult(c component.Component) Result {
	return Result{Kind: ResultInstance, Instance: c}
}

// ElementResult wraps a native node.
func ElementResult(n *dom.Node) Result {
	return Result{Kind: ResultElement, Element: n}
}

// RefResult wraps a subcomponent reference.
func RefResult(ref *component.Ref) Result {
	return Result{Kind: ResultRef, Ref: ref}
}

// IsNone reports whether r holds nothing.
func (r Result) IsNone() bool {
	return r.Kind == ResultNone
}

// Node returns the element, or the instance's root. It is nil for
// references and empty results.
func (r Result) Node() *dom.Node {
	switch r.Kind {
	case ResultElement:
		return r.Element
	case ResultInstance:
		return r.Instance.Root()
	default:
		return nil
	}
}

// Value returns the payload as an untyped value, or nil.
func (r Result) Value() any {
	switch r.Kind {
	case ResultInstance:
		return r.Instance
	case ResultElement:
		return r.Element
	case ResultRef:
		return r.Ref
	default:
		return nil
	}
}
