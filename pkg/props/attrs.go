package props

import "strings"

// Prop is a single key/value entry.
type Prop struct {
	Key   string
	Value any
}

// Of builds a bag from entries. Later entries win, except class entries,
// which accumulate.
func Of(entries ...Prop) Props {
	out := make(Props, len(entries))
	for _, p := range entries {
		if p.Key == "class" {
			if prev, ok := out["class"].(string); ok && prev != "" {
				out["class"] = prev + " " + AttrString(p.Value)
				continue
			}
		}
		out[p.Key] = p.Value
	}
	return out
}

func prop(key string, value any) Prop { return Prop{Key: key, Value: value} }

// ID sets the id.
func ID(id string) Prop { return prop("id", id) }

// Class sets class tokens, joined with spaces.
func Class(classes ...string) Prop { return prop("class", strings.Join(classes, " ")) }

// Style sets structured style declarations keyed by camelCase property.
func Style(decls map[string]any) Prop { return prop("style", Props(decls)) }

// Data creates a data-* attribute.
// Example: Data("id", 123) → data-id="123"
func Data(key string, value any) Prop { return prop("data-"+key, value) }

// Aria creates an aria-* attribute.
func Aria(key string, value any) Prop { return prop("aria-"+key, value) }

// Role sets the role attribute.
func Role(role string) Prop { return prop("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Prop { return Aria("label", label) }

// AriaLabelledBy sets the aria-labelledby attribute.
func AriaLabelledBy(id string) Prop { return Aria("labelledby", id) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Prop { return Aria("hidden", hidden) }

// AriaModal sets the aria-modal attribute.
func AriaModal(modal bool) Prop { return Aria("modal", modal) }

// TabIndex sets the tab order.
func TabIndex(index int) Prop { return prop("tabindex", index) }

// Hidden sets the hidden property.
func Hidden() Prop { return prop("hidden", true) }

// Disabled sets the disabled property.
func Disabled() Prop { return prop("disabled", true) }

// Href sets the link target.
func Href(url string) Prop { return prop("href", url) }

// Type sets the type property.
func Type(t string) Prop { return prop("type", t) }

// Name sets the name property.
func Name(name string) Prop { return prop("name", name) }

// Value sets the value property.
func Value(value any) Prop { return prop("value", value) }

// Title sets the title property.
func Title(title string) Prop { return prop("title", title) }
