package props

import "strings"

// Parts is a property bag split for a component constructor.
type Parts struct {
	// ClassName holds the class and className values, space-joined.
	ClassName string

	// Attrs holds aria-, data- and style keys for the root element.
	Attrs Props

	// Options holds everything else.
	Options Props
}

// Partition splits props by key name. Every key lands in exactly one part.
func Partition(props map[string]any) Parts {
	parts := Parts{
		Attrs:   Props{},
		Options: Props{},
	}
	var classes []string
	for _, key := range sortedKeys(props) {
		value := props[key]
		switch {
		case key == "class" || key == "className":
			if value != nil {
				if s := strings.TrimSpace(AttrString(value)); s != "" {
					classes = append(classes, s)
				}
			}
		case key == "style" || IsAttributeKey(key):
			parts.Attrs[key] = value
		default:
			parts.Options[key] = value
		}
	}
	parts.ClassName = strings.Join(classes, " ")
	return parts
}
