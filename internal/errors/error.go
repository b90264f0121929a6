package errors

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRegistry Category = "registry"
	CategoryCraft    Category = "craft"
	CategoryPaint    Category = "paint"
	CategoryTemplate Category = "template"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location represents a source location inside a template or file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// CraftError is a structured error with a stable code, an optional source
// location and a fix suggestion.
type CraftError struct {
	// Code is a unique error identifier (e.g., "C001").
	Code string

	// Category is the error type (registry, craft, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Subject names the component, subcomponent or item the error is about.
	Subject string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// ContextStart is the line number of Context[0]. Zero means the
	// context is centered on Location.Line.
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CraftError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Subject != "" {
		msg += ": " + e.Subject
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CraftError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a CraftError with the same code.
// This lets callers compare against sentinel values built with New.
func (e *CraftError) Is(target error) bool {
	t, ok := target.(*CraftError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithLocation adds a file location and reads the surrounding lines from disk.
func (e *CraftError) WithLocation(file string, line, column int) *CraftError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithSource adds a location inside an in-memory source (a template string).
func (e *CraftError) WithSource(name, src string, line, column int) *CraftError {
	e.Location = &Location{File: name, Line: line, Column: column}
	e.Context, e.ContextStart = sourceContextLines(strings.Split(src, "\n"), line, 5)
	return e
}

// WithSubject records what the error is about.
func (e *CraftError) WithSubject(subject string) *CraftError {
	e.Subject = subject
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CraftError) WithSuggestion(s string) *CraftError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *CraftError) WithExample(ex string) *CraftError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CraftError) WithDetail(d string) *CraftError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *CraftError) WithDetailf(format string, args ...any) *CraftError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithContext adds custom context lines to the error.
func (e *CraftError) WithContext(lines []string) *CraftError {
	e.Context = lines
	e.ContextStart = 0
	return e
}

// Wrap wraps another error.
func (e *CraftError) Wrap(err error) *CraftError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var all []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	endLine := targetLine + contextSize/2
	for scanner.Scan() {
		lineNum++
		all = append(all, scanner.Text())
		if lineNum > endLine {
			break
		}
	}
	return sourceContextLines(all, targetLine, contextSize)
}

// sourceContextLines picks the window of lines around targetLine and
// returns it with the line number of its first entry.
func sourceContextLines(lines []string, targetLine, contextSize int) ([]string, int) {
	if targetLine < 1 || targetLine > len(lines) {
		return nil, 0
	}
	half := contextSize / 2
	before := half
	if targetLine-1 < before {
		before = targetLine - 1
	}
	start := targetLine - 1 - before
	end := targetLine - 1 + half
	if end >= len(lines) {
		end = len(lines) - 1
	}
	out := make([]string, 0, end-start+1)
	out = append(out, lines[start:end+1]...)
	return out, start + 1
}

// New creates a CraftError from a registered error code.
func New(code string) *CraftError {
	template, ok := registry[code]
	if !ok {
		return &CraftError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CraftError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new CraftError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CraftError {
	return &CraftError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CraftError.
func FromError(err error, code string) *CraftError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CraftError); ok {
		return ce
	}
	return New(code).Wrap(err)
}

// As returns the first CraftError in err's chain.
func As(err error) (*CraftError, bool) {
	for err != nil {
		if ce, ok := err.(*CraftError); ok {
			return ce, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// Code returns the code of err if it is (or wraps) a CraftError.
func Code(err error) string {
	if ce, ok := As(err); ok {
		return ce.Code
	}
	return ""
}
