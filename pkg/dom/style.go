package dom

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ParseStyle parses a CSS declaration list ("color: red; margin: 0 auto")
// into a style Object keyed by camelCase property names. Custom properties
// (--name) keep their name.
func ParseStyle(text string) (Object, error) {
	p := &styleParser{input: text}
	decls, err := p.parse()
	if err != nil {
		return nil, err
	}
	style := make(Object, len(decls))
	for _, d := range decls {
		style[CamelCase(d.name)] = d.value
	}
	return style, nil
}

// StyleText serializes a style Object as a CSS declaration list with
// kebab-case property names in sorted order. Nested objects and nil values
// are skipped.
func StyleText(style Object) string {
	keys := make([]string, 0, len(style))
	for k, v := range style {
		if v == nil {
			continue
		}
		if _, nested := v.(Object); nested {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(KebabCase(k))
		b.WriteString(": ")
		b.WriteString(fmt.Sprint(style[k]))
		b.WriteString(";")
	}
	return b.String()
}

// CamelCase converts a CSS property name to its style-object name
// ("background-color" -> "backgroundColor", "-webkit-x" -> "WebkitX",
// "-ms-x" -> "msX").
func CamelCase(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	parts := strings.Split(name, "-")
	var b strings.Builder
	index := 1
	if parts[0] == "" && len(parts) > 1 {
		if parts[1] == "ms" {
			b.WriteString("ms")
		} else {
			b.WriteString(capitalize(parts[1]))
		}
		index = 2
	} else {
		b.WriteString(parts[0])
	}
	for ; index < len(parts); index++ {
		b.WriteString(capitalize(parts[index]))
	}
	return b.String()
}

// KebabCase converts a style-object name back to a CSS property name.
func KebabCase(name string) string {
	if strings.HasPrefix(name, "--") || strings.ContainsRune(name, '-') {
		return name
	}
	var b strings.Builder
	if strings.HasPrefix(name, "ms") && len(name) > 2 && unicode.IsUpper(rune(name[2])) {
		b.WriteString("-")
	}
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type declaration struct {
	name  string
	value string
}

// styleParser is a small CSS declaration-list scanner. It honors quotes and
// parentheses so values like url("a;b") survive.
type styleParser struct {
	input string
	pos   int
}

func (p *styleParser) parse() ([]declaration, error) {
	var out []declaration
	last := ""
	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		if p.peek() == ';' {
			p.pos++
			continue
		}
		name, err := p.parseName(last)
		if err != nil {
			return nil, err
		}
		last = name
		p.skipWhitespace()
		value, err := p.parseValue(name)
		if err != nil {
			return nil, err
		}
		out = append(out, declaration{name: name, value: value})
		p.skipWhitespace()
		if p.eof() {
			break
		}
		if p.peek() != ';' {
			return nil, fmt.Errorf("bad style attribute, unexpected character %q at pos %d", string(p.peek()), p.pos+1)
		}
		p.pos++
	}
	return out, nil
}

func (p *styleParser) parseName(last string) (string, error) {
	start := p.pos
	for !p.eof() {
		c := rune(p.peek())
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	name := p.input[start:p.pos]
	p.skipWhitespace()
	if name == "" {
		return "", fmt.Errorf("bad style attribute, invalid property name after %q at pos %d", last, p.pos+1)
	}
	if p.eof() || p.peek() != ':' {
		return "", fmt.Errorf("bad style attribute, expected colon after property %q at pos %d", name, p.pos+1)
	}
	p.pos++
	return name, nil
}

func (p *styleParser) parseValue(name string) (string, error) {
	start := p.pos
	var quote byte
	quotePos := 0
	parens := 0
	for !p.eof() {
		c := p.peek()
		if quote != 0 {
			if c == quote {
				quote = 0
			} else if c == '\\' {
				p.pos++
			}
		} else {
			switch {
			case c == '"' || c == '\'':
				quote = c
				quotePos = p.pos
			case c == '(':
				parens++
			case c == ')':
				if parens == 0 {
					return "", fmt.Errorf("unmatched ')' at pos %d", p.pos+1)
				}
				parens--
			case c == ';' && parens == 0:
				return strings.TrimSpace(p.input[start:p.pos]), nil
			}
		}
		p.pos++
	}
	if quote != 0 {
		return "", fmt.Errorf("bad style attribute, while parsing %q, unmatched quote at pos %d", name, quotePos+1)
	}
	if parens > 0 {
		return "", fmt.Errorf("bad style attribute, while parsing %q, unmatched '('", name)
	}
	return strings.TrimSpace(p.input[start:p.pos]), nil
}

func (p *styleParser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.pos++
	}
}

func (p *styleParser) peek() byte {
	return p.input[p.pos]
}

func (p *styleParser) eof() bool {
	return p.pos >= len(p.input)
}
