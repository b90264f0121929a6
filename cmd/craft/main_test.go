package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/vango-dev/craft/internal/errors"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cerrors.NewPrinter(&out))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--dir", t.TempDir(), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestComponents(t *testing.T) {
	out, err := run(t, "", "components")
	require.NoError(t, err)
	assert.Contains(t, out, "Button (children)\n")
	assert.Contains(t, out, "Dialog  Dialog.Actions, Dialog.Body, Dialog.Title\n")

	out, err = run(t, "", "components", "--json")
	require.NoError(t, err)
	var list []componentInfo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 4)
	assert.Equal(t, "Menu", list[3].Name)
	assert.Equal(t, []string{"Menu.Item"}, list[3].Subcomponents)
}

func TestPaintStdin(t *testing.T) {
	out, err := run(t, `<Button variant="#param:v">Go</Button>`, "paint", "-", "--param", "v=primary")
	require.NoError(t, err)
	assert.Equal(t, "<button class=\"btn btn-primary\" type=\"button\">Go</button>\n", out)
}

func TestPaintPageToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "card.html")
	require.NoError(t, os.WriteFile(src, []byte(`<Card title="#param:t">x</Card>`), 0644))
	dst := filepath.Join(dir, "out", "card.html")

	_, err := run(t, "", "paint", src, "--page", "-p", "t=Stats", "-o", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.Contains(t, string(data), "<h3>Stats</h3>")
}

func TestPaintSyntaxError(t *testing.T) {
	_, err := run(t, `<div>`, "paint", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C030")
}

func TestDiagnosticOutput(t *testing.T) {
	dir := t.TempDir()
	paintBroken := func(cfg string, args ...string) string {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "craft.json"), []byte(cfg), 0o644))
		var diag bytes.Buffer
		printer := cerrors.NewPrinter(&diag)
		cmd := newRootCmd(printer)
		cmd.SetOut(io.Discard)
		cmd.SetIn(strings.NewReader("<div>"))
		cmd.SetArgs(append([]string{"--dir", dir, "--log-level", "error"}, append(args, "paint", "-")...))
		err := cmd.Execute()
		require.Error(t, err)
		printer.Print(err)
		return diag.String()
	}

	out := paintBroken(`{"log":{"format":"json"}}`)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "C030", decoded["code"])
	assert.Equal(t, "template", decoded["category"])

	out = paintBroken(`{}`, "--no-color")
	assert.True(t, strings.HasPrefix(out, "C030 [template] Template syntax error"), out)
	assert.NotContains(t, out, "\033[")
}

func TestPaintStrict(t *testing.T) {
	assert.Panics(t, func() {
		run(t, `<p><.Title>x</.Title></p>`, "paint", "-", "--strict")
	})
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"n=3", "on=true", "s=hello", "o={\"a\":1}", "eq=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"n":  float64(3),
		"on": true,
		"s":  "hello",
		"o":  map[string]any{"a": float64(1)},
		"eq": "a=b",
	}, got)

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)
}

func TestPageName(t *testing.T) {
	dir := t.TempDir()
	templates := filepath.Join(dir, "templates")
	assert.Equal(t, "docs/a.html", pageName(templates, filepath.Join(templates, "docs", "a.html")))
	assert.Equal(t, "b.html", pageName(templates, filepath.Join(dir, "b.html")))
	assert.Equal(t, "index", pageName(templates, "-"))
}

func TestInitThenPaint(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	_, err := run(t, "", "init", dir, "--template", "gallery")
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCmd(cerrors.NewPrinter(io.Discard))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dir", dir, "--strict", "paint", filepath.Join(dir, "templates", "menu.html")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `role="menu"`)
	assert.Contains(t, out.String(), `data-value="quit"`)

	_, err = run(t, "", "init", dir)
	assert.Error(t, err)
}
