// Package dev provides hot reload for the preview server.
//
// This package implements:
//   - File watching for template and stylesheet changes (fsnotify)
//   - WebSocket-based browser refresh
//   - An error overlay for templates that fail to compile
//
// # Usage
//
//	hub := dev.NewReloadServer(logger)
//	w, err := dev.NewWatcher(dev.WatcherConfig{Paths: cfg.WatchPaths()}, logger)
//	if err != nil {
//	    return err
//	}
//	w.OnChange(func(c dev.Change) { hub.NotifyReload() })
//	go w.Start(ctx)
//
//	router.Get(dev.ReloadPath, hub.HandleWebSocket)
//
// # Hot Reload Protocol
//
// The browser connects to /_dev/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "css"}                   // Triggers CSS-only reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
