package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// palette holds the escape sequences a diagnostic is painted with. The zero
// palette writes plain text.
type palette struct {
	code, subject, where, gutter, marker, hint, reset string
}

var ansiPalette = palette{
	code:    "\033[1;31m",
	subject: "\033[1m",
	where:   "\033[36m",
	gutter:  "\033[90m",
	marker:  "\033[1;31m",
	hint:    "\033[33m",
	reset:   "\033[0m",
}

func (p palette) wrap(seq, s string) string {
	if seq == "" || s == "" {
		return s
	}
	return seq + s + p.reset
}

// Format renders the diagnostic for a terminal, without colors.
func (e *CraftError) Format() string {
	var b strings.Builder
	e.writeText(&b, palette{})
	return b.String()
}

// writeText renders e as:
//
//	C030 [template] Template syntax error
//	  --> page.html:3:7
//	   |
//	 3 |   <Menu.Item/>
//	   |   ^^^^^^^^^^ Menu.Item
//
// When e has a template excerpt the subject labels the marker under the
// offending column; otherwise it is appended to the headline.
func (e *CraftError) writeText(w io.Writer, p palette) {
	head := e.Message
	excerpt := e.Location != nil && len(e.Context) > 0
	if e.Subject != "" && !excerpt {
		head += ": " + p.wrap(p.subject, e.Subject)
	}
	if e.Code != "" {
		tag := e.Code
		if e.Category != "" {
			tag += " [" + string(e.Category) + "]"
		}
		head = p.wrap(p.code, tag) + " " + head
	} else {
		head = p.wrap(p.code, "error") + " " + head
	}
	fmt.Fprintln(w, head)

	if e.Location != nil {
		fmt.Fprintf(w, "  %s %s\n", p.wrap(p.gutter, "-->"), p.wrap(p.where, e.Location.String()))
	}
	if excerpt {
		e.writeExcerpt(w, p)
	}

	if e.Detail != "" {
		fmt.Fprintln(w)
		for _, line := range wrapWords(e.Detail, 72) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if e.Suggestion != "" {
		fmt.Fprintf(w, "\n  %s %s\n", p.wrap(p.hint, "hint:"), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(w, "\n  %s\n", p.wrap(p.hint, "example:"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(w, "      %s\n", line)
		}
	}
}

// writeExcerpt prints the template lines around the location with a marker
// under the offending column.
func (e *CraftError) writeExcerpt(w io.Writer, p palette) {
	start := e.ContextStart
	if start == 0 {
		start = e.Location.Line - len(e.Context)/2
	}
	width := len(fmt.Sprint(start + len(e.Context) - 1))
	blank := strings.Repeat(" ", width+1)

	fmt.Fprintf(w, "%s%s\n", blank, p.wrap(p.gutter, " |"))
	for i, line := range e.Context {
		n := start + i
		fmt.Fprintf(w, "%s %s %s\n", p.wrap(p.gutter, fmt.Sprintf("%*d", width, n)), p.wrap(p.gutter, "|"), line)
		if n != e.Location.Line {
			continue
		}
		col := e.Location.Column
		if col < 1 {
			col = 1
		}
		marker := strings.Repeat("^", markerWidth(line, col, e.Subject))
		label := ""
		if e.Subject != "" {
			label = " " + p.wrap(p.subject, e.Subject)
		}
		fmt.Fprintf(w, "%s%s %s%s%s\n", blank, p.wrap(p.gutter, " |"), strings.Repeat(" ", col-1), p.wrap(p.marker, marker), label)
	}
	fmt.Fprintf(w, "%s%s\n", blank, p.wrap(p.gutter, " |"))
}

// markerWidth underlines the subject when it sits at the column, and a
// single character otherwise.
func markerWidth(line string, col int, subject string) int {
	if subject == "" || col > len(line) {
		return 1
	}
	rest := line[col-1:]
	if i := strings.Index(rest, subject); i >= 0 && i <= 1 {
		return i + len(subject)
	}
	return 1
}

// FormatCompact returns "file:line:col: CODE: message: subject", the
// form shown in HTTP responses and the dev overlay.
func (e *CraftError) FormatCompact() string {
	if e.Location == nil {
		return e.Error()
	}
	return e.Location.String() + ": " + e.Error()
}

// jsonDiagnostic is the machine-readable shape of a CraftError.
type jsonDiagnostic struct {
	Code       string    `json:"code,omitempty"`
	Category   Category  `json:"category,omitempty"`
	Message    string    `json:"message"`
	Subject    string    `json:"subject,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Cause      string    `json:"cause,omitempty"`
}

// FormatJSON returns the diagnostic as a single-line JSON object.
func (e *CraftError) FormatJSON() string {
	d := jsonDiagnostic{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Subject:    e.Subject,
		Detail:     e.Detail,
		Location:   e.Location,
		Suggestion: e.Suggestion,
	}
	if e.Wrapped != nil {
		d.Cause = e.Wrapped.Error()
	}
	out, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(out)
}

// wrapWords breaks text into lines of at most width bytes, splitting on
// whitespace. A single word longer than width gets a line of its own.
func wrapWords(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Printer writes diagnostics to a stream, as colored text or as JSON
// lines.
type Printer struct {
	w     io.Writer
	color bool
	json  bool
}

// NewPrinter returns a plain-text Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// SetColor toggles ANSI colors for text output.
func (p *Printer) SetColor(on bool) *Printer {
	p.color = on
	return p
}

// SetJSON switches the printer to one JSON object per line.
func (p *Printer) SetJSON(on bool) *Printer {
	p.json = on
	return p
}

// Print writes err, or the CraftError it wraps. Other errors are printed
// with their message only.
func (p *Printer) Print(err error) {
	if err == nil {
		return
	}
	ce, ok := As(err)
	if !ok {
		ce = &CraftError{Message: err.Error()}
	}
	if p.json {
		fmt.Fprintln(p.w, ce.FormatJSON())
		return
	}
	pal := palette{}
	if p.color {
		pal = ansiPalette
	}
	ce.writeText(p.w, pal)
}
