package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/craft/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Templates != DefaultTemplates {
		t.Errorf("Templates = %q, want %q", cfg.Templates, DefaultTemplates)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if got := errors.Code(err); got != "C040" {
		t.Errorf("Load() code = %q, want C040", got)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{
  "name": "docs",
  "templates": "views",
  "dev": {"port": 8080, "host": "0.0.0.0", "watch": ["assets", "views"]},
  "publish": {"bucket": "b", "prefix": "p"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "docs" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.DevAddress() != "0.0.0.0:8080" {
		t.Errorf("DevAddress() = %q", cfg.DevAddress())
	}
	if cfg.TemplatesPath() != filepath.Join(dir, "views") {
		t.Errorf("TemplatesPath() = %q", cfg.TemplatesPath())
	}
	want := []string{filepath.Join(dir, "views"), filepath.Join(dir, "assets")}
	got := cfg.WatchPaths()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("WatchPaths() = %v, want %v", got, want)
	}
	if cfg.Publish.Bucket != "b" || cfg.Publish.Prefix != "p" {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "craft.yaml", `
name: site
strict: true
metrics:
  enabled: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Strict || !cfg.Metrics.Enabled {
		t.Errorf("Strict = %v, Metrics.Enabled = %v", cfg.Strict, cfg.Metrics.Enabled)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, file, body string
	}{
		{"bad json", ConfigFileName, `{"dev": `},
		{"bad yaml", "craft.yml", "dev: [unclosed"},
		{"bad port", ConfigFileName, `{"dev": {"port": 70000}}`},
		{"bad level", ConfigFileName, `{"log": {"level": "loud"}}`},
		{"bad format", ConfigFileName, `{"log": {"format": "xml"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.body)
			_, err := Load(dir)
			if got := errors.Code(err); got != "C041" {
				t.Errorf("Load() code = %q, want C041 (err %v)", got, err)
			}
		})
	}
}

func TestEnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `{"dev": {"port": 4000}}`)
	writeFile(t, dir, ".env", "CRAFT_STRICT=true\nCRAFT_LOG_LEVEL=warn\n")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvDev, "1")
	t.Cleanup(func() {
		os.Unsetenv(EnvStrict)
		os.Unsetenv(EnvLogLevel)
	})

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Dev.Port != 9090 {
		t.Errorf("Dev.Port = %d, want 9090", cfg.Dev.Port)
	}
	if !cfg.Dev.Enabled || !cfg.Dev.HotReload {
		t.Error("CRAFT_DEV should enable dev mode and hot reload")
	}
	if !cfg.Strict {
		t.Error(".env should set strict")
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("LogLevel() = %v, want warn", cfg.LogLevel())
	}
}

func TestEnvironmentBadPort(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	_, err := LoadOptional(t.TempDir())
	if got := errors.Code(err); got != "C041" {
		t.Errorf("LoadOptional() code = %q, want C041", got)
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional error: %v", err)
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d", cfg.Dev.Port)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "saved"
	if err := cfg.SaveTo(filepath.Join(dir, "craft.yaml")); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Name != "saved" {
		t.Errorf("Name = %q", got.Name)
	}
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}
