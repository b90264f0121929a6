// Package props applies property bags to dom elements.
//
// A property bag is a flat map from names to values. Set applies it to an
// element: aria- and data- keys become string attributes, structured
// values merge into an existing same-named sub-object (such as style) and
// everything else is assigned as an element property after translating
// HTML attribute spellings through a small alias table.
//
// Partition splits a bag destined for a component constructor into the
// class name, the attributes for the component's root and the constructor
// options. Partitioning looks only at key names, never at values.
package props

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/craft/pkg/dom"
)

// Props is a property bag.
type Props map[string]any

// aliases maps HTML attribute names to element property names.
var aliases = map[string]string{
	"class":           "className",
	"tabindex":        "tabIndex",
	"for":             "htmlFor",
	"readonly":        "readOnly",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"colspan":         "colSpan",
	"rowspan":         "rowSpan",
	"contenteditable": "contentEditable",
	"accesskey":       "accessKey",
	"http-equiv":      "httpEquiv",
}

// PropertyName returns the element property name for key.
func PropertyName(key string) string {
	if alias, ok := aliases[key]; ok {
		return alias
	}
	return key
}

// IsAttributeKey reports whether key is applied as a string attribute.
func IsAttributeKey(key string) bool {
	return strings.HasPrefix(key, "aria-") || strings.HasPrefix(key, "data-")
}

// Set applies props to el in key order. Applying the same bag twice is
// not idempotent for structured values: merges only add.
func Set(el *dom.Node, props map[string]any) {
	if el == nil || !el.IsElement() {
		return
	}
	for _, key := range sortedKeys(props) {
		value := props[key]

		if IsAttributeKey(key) {
			if value == nil {
				el.RemoveAttribute(key)
				continue
			}
			el.SetAttribute(key, AttrString(value))
			continue
		}

		if obj, ok := AsObject(value); ok {
			if target, ok := el.Object(key); ok {
				Merge(target, obj)
				continue
			}
			value = obj
		}

		el.SetProp(PropertyName(key), value)
	}
}

// Merge copies src into dst. Nested objects merge into existing nested
// objects; every other value is assigned. Keys absent from src survive.
func Merge(dst, src dom.Object) {
	for key, value := range src {
		if obj, ok := AsObject(value); ok {
			if existing, ok := dst[key].(dom.Object); ok {
				Merge(existing, obj)
				continue
			}
			value = copyObject(obj)
		}
		dst[key] = value
	}
}

// AsObject reports whether v is a structured value and returns it as a
// dom.Object.
func AsObject(v any) (dom.Object, bool) {
	switch o := v.(type) {
	case dom.Object:
		return o, true
	case Props:
		return dom.Object(o), true
	case map[string]string:
		out := make(dom.Object, len(o))
		for k, s := range o {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// AttrString converts a value to its attribute string.
func AttrString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func copyObject(src dom.Object) dom.Object {
	dst := make(dom.Object, len(src))
	Merge(dst, src)
	return dst
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
