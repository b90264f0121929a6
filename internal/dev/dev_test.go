package dev

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.html")
	if err := os.WriteFile(file, []byte("<p>a</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WatcherConfig{Paths: []string{dir}, Debounce: 20 * time.Millisecond}, quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	changes := make(chan Change, 10)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	if err := os.WriteFile(file, []byte("<p>b</p>"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		if c.Type != ChangeTemplate {
			t.Errorf("Type = %v, want template", c.Type)
		}
		if c.Path != file {
			t.Errorf("Path = %q, want %q", c.Path, file)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}
}

func TestWatcherSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"views", "node_modules", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}

	w, err := NewWatcher(WatcherConfig{Paths: []string{dir, filepath.Join(dir, "missing")}}, quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	got := strings.Join(w.WatchList(), ",")
	if !strings.Contains(got, filepath.Join(dir, "views")) {
		t.Errorf("WatchList() = %s, want views", got)
	}
	if strings.Contains(got, "node_modules") || strings.Contains(got, ".git") {
		t.Errorf("WatchList() = %s, want ignored dirs skipped", got)
	}
}

func TestShouldIgnore(t *testing.T) {
	w := &Watcher{config: WatcherConfig{Ignore: []string{"*.swp", "build/out", "vendor"}}}
	tests := []struct {
		path string
		want bool
	}{
		{"/p/a.swp", true},
		{"/p/build/out/x.html", true},
		{"/p/build/x.html", false},
		{"/p/vendor/lib.css", true},
		{"/p/views/index.html", false},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClassifyChange(t *testing.T) {
	tests := map[string]ChangeType{
		"a/index.html": ChangeTemplate,
		"a/card.tmpl":  ChangeTemplate,
		"a/site.CSS":   ChangeCSS,
		"craft.yaml":   ChangeConfig,
		"a/.env":       ChangeConfig,
		"a/logo.svg":   ChangeAsset,
	}
	for p, want := range tests {
		if got := classifyChange(p); got != want {
			t.Errorf("classifyChange(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestReloadServerBroadcast(t *testing.T) {
	hub := NewReloadServer(quiet())
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Notify(Change{Path: "site.css", Type: ChangeCSS})
	hub.NotifyError("boom")

	want := []ReloadMessage{
		{Type: ReloadTypeCSS, File: "site.css"},
		{Type: ReloadTypeError, Error: "boom"},
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for _, w := range want {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		var got ReloadMessage
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("message = %+v, want %+v", got, w)
		}
	}

	hub.Close()
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after Close", hub.ClientCount())
	}
}

func TestInjectScript(t *testing.T) {
	got := InjectScript("<html><body><p>x</p></body></html>")
	if !strings.HasSuffix(got, DevClientScript+"</body></html>") {
		t.Errorf("script not placed before </body>: %s", got)
	}
	if got := InjectScript("<p>x</p>"); !strings.HasSuffix(got, DevClientScript) {
		t.Error("script not appended to fragment")
	}
}
