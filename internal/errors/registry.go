package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Registry Errors (C001-C009)
	// ============================================

	"C001": {
		Category: CategoryRegistry,
		Message:  "Component already registered",
		Detail:   "A component with this name is already registered. Re-registration is only allowed in development mode, where it replaces the previous entry.",
	},
	"C002": {
		Category: CategoryRegistry,
		Message:  "Component not registered",
		Detail:   "No component with this name is registered, so it cannot be unregistered.",
	},
	"C003": {
		Category: CategoryRegistry,
		Message:  "Invalid component type",
		Detail:   "A component type needs a name and a constructor.",
	},

	// ============================================
	// Craft Errors (C010-C019)
	// ============================================

	"C010": {
		Category: CategoryCraft,
		Message:  "Subcomponent does not belong to component",
		Detail:   "A subcomponent was passed to a component whose name is not its prefix. Subcomponents may only be direct structural children of their owner.",
	},
	"C011": {
		Category: CategoryCraft,
		Message:  "Subcomponent handler not found",
		Detail:   "The component does not declare a handler for this subcomponent.",
	},
	"C012": {
		Category: CategoryCraft,
		Message:  "Plain child mixed with subcomponents",
		Detail:   "Once a component receives a subcomponent child, every child must be a subcomponent. The plain child was dropped.",
	},
	"C013": {
		Category: CategoryCraft,
		Message:  "Component does not accept children",
		Detail:   "Children were passed to a component that does not allow arbitrary children. They were dropped.",
	},
	"C014": {
		Category: CategoryCraft,
		Message:  "Component has no children setter",
		Detail:   "The component type allows children but its instances do not implement SetChildren.",
	},
	"C015": {
		Category: CategoryCraft,
		Message:  "Subcomponent handler failed",
		Detail:   "The component rejected a subcomponent.",
	},
	"C016": {
		Category: CategoryCraft,
		Message:  "Constructor returned nil",
		Detail:   "The component constructor did not return an instance.",
	},
	"C017": {
		Category: CategoryCraft,
		Message:  "Pending subcomponent outside a component",
		Detail:   "A shorthand subcomponent (.Name) can only be resolved by an enclosing component call.",
	},

	// ============================================
	// Paint Errors (C020-C029)
	// ============================================

	"C020": {
		Category: CategoryPaint,
		Message:  "Unsupported render item",
		Detail:   "The item is not a node, string, component, list or nil/false. It was dropped.",
	},
	"C021": {
		Category: CategoryPaint,
		Message:  "Component has no root element",
		Detail:   "The component instance returned a nil root element. It was dropped.",
	},
	"C022": {
		Category: CategoryPaint,
		Message:  "Invalid insertion target",
		Detail:   "Nodes can only be inserted into an element. The target was nil, empty or a text node.",
	},

	// ============================================
	// Template Errors (C030-C039)
	// ============================================

	"C030": {
		Category: CategoryTemplate,
		Message:  "Template syntax error",
		Detail:   "The template could not be parsed.",
	},
	"C031": {
		Category: CategoryTemplate,
		Message:  "Template parameter missing",
		Detail:   "The template references a parameter that was not supplied.",
	},

	// ============================================
	// Config Errors (C040-C049)
	// ============================================

	"C040": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No craft.json or craft.yaml was found in the project directory.",
	},
	"C041": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The project configuration could not be parsed.",
	},

	// ============================================
	// CLI Errors (C050-C059)
	// ============================================

	"C050": {
		Category: CategoryCLI,
		Message:  "Publish failed",
		Detail:   "The painted page could not be uploaded.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
