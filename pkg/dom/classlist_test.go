package dom

import "testing"

func TestClassList(t *testing.T) {
	var c ClassList
	c.Add("btn", "btn-primary btn", "  large ")

	if got := c.String(); got != "btn btn-primary large" {
		t.Errorf("String() = %q", got)
	}
	if !c.Contains("large") || c.Contains("small") {
		t.Error("Contains mismatch")
	}

	c.Remove("btn-primary")
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	if !c.Toggle("active") || !c.Contains("active") {
		t.Error("Toggle should add a missing token")
	}
	if c.Toggle("active") || c.Contains("active") {
		t.Error("Toggle should remove a present token")
	}

	c.Set("one two")
	tokens := c.Tokens()
	if len(tokens) != 2 || tokens[0] != "one" || tokens[1] != "two" {
		t.Errorf("Tokens() = %v", tokens)
	}
}
