package component

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// CraftedOption is set on every option bag built by the engine.
const CraftedOption = "crafted"

// Options is the constructor option bag.
type Options map[string]any

// Crafted reports whether the instance is being built by the engine.
func (o Options) Crafted() bool {
	v, _ := o[CraftedOption].(bool)
	return v
}

// String returns the option as a string, or "" when unset.
func (o Options) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the option as a bool. A present key with an empty string
// value counts as true, matching bare HTML attributes.
func (o Options) Bool(key string) bool {
	switch v := o[key].(type) {
	case bool:
		return v
	case string:
		return v == "" || v == "true" || v == key
	default:
		return false
	}
}

// Decode copies the options into the struct pointed to by out, matching
// fields by their `option` tag or by case-insensitive name. Strings are
// converted to numbers and booleans where the field requires it.
func (o Options) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "option",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(o))
}
