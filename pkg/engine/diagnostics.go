package engine

import (
	"fmt"
	"log/slog"

	cerrors "github.com/vango-dev/craft/internal/errors"
)

// Diagnostic is a non-fatal problem found while crafting or painting.
type Diagnostic struct {
	Code     string
	Category string
	Message  string
	Subject  string

	// Component is the component being crafted, if any.
	Component string

	// Err is the coded error.
	Err error
}

// String formats the diagnostic as "code: message: subject".
func (d Diagnostic) String() string {
	return d.Err.Error()
}

func (e *Engine) report(err *cerrors.CraftError, component string, attrs ...any) {
	d := Diagnostic{
		Code:      err.Code,
		Category:  string(err.Category),
		Message:   err.Message,
		Subject:   err.Subject,
		Component: component,
		Err:       err,
	}

	args := []any{"code", d.Code, "category", d.Category}
	if component != "" {
		args = append(args, "component", component)
	}
	args = append(args, attrs...)
	e.logger.Warn(d.Message, args...)

	e.metrics.diagnostic(d.Code, d.Category)
	if e.onDiagnostic != nil {
		e.onDiagnostic(d)
	}
	if e.strict {
		panic(err)
	}
}

// describe names an item for diagnostics.
func describe(v any) string {
	switch x := v.(type) {
	case string:
		if len(x) > 32 {
			x = x[:32] + "..."
		}
		return fmt.Sprintf("%q", x)
	case fmt.Stringer:
		return fmt.Sprintf("%T(%s)", v, x.String())
	default:
		return fmt.Sprintf("%T", v)
	}
}

func itemAttr(v any) slog.Attr {
	return slog.String("item", describe(v))
}
