package engine

import (
	"reflect"

	"github.com/vango-dev/craft/pkg/component"
	"github.com/vango-dev/craft/pkg/dom"
)

// unwrap replaces a Result with its payload.
func unwrap(v any) any {
	switch r := v.(type) {
	case Result:
		return r.Value()
	case *Result:
		if r == nil {
			return nil
		}
		return r.Value()
	}
	return v
}

// unwrapDeep is unwrap applied through slices. Slices of Results become
// []any; other slices keep their type unless they hold Results.
func unwrapDeep(v any) any {
	v = unwrap(v)
	switch s := v.(type) {
	case []Result:
		out := make([]any, len(s))
		for i, r := range s {
			out[i] = r.Value()
		}
		return out
	case []any:
		out := make([]any, len(s))
		for i, c := range s {
			out[i] = unwrapDeep(c)
		}
		return out
	}
	return v
}

// asSlice returns the elements of a slice or array value. Strings and byte
// slices are not treated as sequences.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []*dom.Node:
		out := make([]any, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out, true
	case dom.NodeList:
		return asSlice([]*dom.Node(s))
	case []string:
		out := make([]any, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out, true
	case []Result:
		out := make([]any, len(s))
		for i, r := range s {
			out[i] = r
		}
		return out, true
	case []*component.Ref:
		out := make([]any, len(s))
		for i, r := range s {
			out[i] = r
		}
		return out, true
	case []byte, string, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isNil reports whether c is nil or an interface holding a nil pointer.
func isNil(c component.Component) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// flatten unwraps Results and splices nested slices at any depth.
func flatten(items []any) []any {
	out := make([]any, 0, len(items))
	var walk func([]any)
	walk = func(items []any) {
		for _, it := range items {
			it = unwrap(it)
			if s, ok := asSlice(it); ok {
				walk(s)
				continue
			}
			out = append(out, it)
		}
	}
	walk(items)
	return out
}

// skippable reports whether v produces no output: nil, false, or a typed
// nil node or reference.
func skippable(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case *dom.Node:
		return x == nil
	case *component.Ref:
		return x == nil
	}
	return false
}
