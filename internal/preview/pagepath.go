package preview

import (
	"errors"
	"strings"
)

// Page path errors.
var (
	errBackslash     = errors.New("path contains backslash")
	errNullByte      = errors.New("path contains null byte")
	errPercentEscape = errors.New("invalid percent escape sequence")
	errEscapesRoot   = errors.New("path escapes the template directory")
)

// pagePath canonicalizes the wildcard part of a /pages/ URL into a slash
// path relative to the template directory. Empty and "." segments are
// dropped and ".." is resolved. Backslashes, NUL bytes, malformed escapes
// and ".." above the root are rejected. A path without an extension gets
// ".html"; an empty path is "index.html".
func pagePath(raw string) (string, error) {
	if strings.Contains(raw, `\`) {
		return "", errBackslash
	}
	if strings.Contains(raw, "\x00") || strings.Contains(strings.ToUpper(raw), "%00") {
		return "", errNullByte
	}
	if strings.Contains(raw, "%") {
		if err := validatePercentEscapes(raw); err != nil {
			return "", err
		}
	}

	var segments []string
	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", errEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "index.html", nil
	}

	p := strings.Join(segments, "/")
	last := segments[len(segments)-1]
	if !strings.Contains(last, ".") {
		p += ".html"
	}
	return p, nil
}

// validatePercentEscapes checks that every % starts a %XX hex escape.
func validatePercentEscapes(p string) error {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHexDigit(p[i+1]) || !isHexDigit(p[i+2]) {
			return errPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
