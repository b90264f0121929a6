package dom

import "strings"

// ClassList is an ordered set of class tokens.
type ClassList struct {
	tokens []string
}

// Add appends each token that is not already present. Tokens containing
// whitespace are split.
func (c *ClassList) Add(tokens ...string) {
	for _, t := range tokens {
		for _, f := range strings.Fields(t) {
			if !c.Contains(f) {
				c.tokens = append(c.tokens, f)
			}
		}
	}
}

// Remove removes each token if present.
func (c *ClassList) Remove(tokens ...string) {
	for _, t := range tokens {
		for i, have := range c.tokens {
			if have == t {
				c.tokens = append(c.tokens[:i], c.tokens[i+1:]...)
				break
			}
		}
	}
}

// Contains reports whether token is present.
func (c *ClassList) Contains(token string) bool {
	for _, have := range c.tokens {
		if have == token {
			return true
		}
	}
	return false
}

// Toggle adds token if absent and removes it if present. It returns true if
// the token is present afterwards.
func (c *ClassList) Toggle(token string) bool {
	if c.Contains(token) {
		c.Remove(token)
		return false
	}
	c.Add(token)
	return true
}

// Set replaces the list with the whitespace-separated tokens of value.
func (c *ClassList) Set(value string) {
	c.tokens = nil
	c.Add(value)
}

// Len returns the number of tokens.
func (c *ClassList) Len() int {
	return len(c.tokens)
}

// Tokens returns a copy of the tokens in order.
func (c *ClassList) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// String returns the tokens joined by single spaces.
func (c *ClassList) String() string {
	return strings.Join(c.tokens, " ")
}
