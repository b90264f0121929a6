package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/craft/internal/config"
	cerrors "github.com/vango-dev/craft/internal/errors"
	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/registry"
	"github.com/vango-dev/craft/pkg/ui"
)

// globalFlags are shared by every command.
type globalFlags struct {
	dir      string
	strict   bool
	logLevel string
	noColor  bool

	printer *cerrors.Printer
}

func (f *globalFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.dir, "dir", "C", ".", "Project directory")
	cmd.PersistentFlags().BoolVar(&f.strict, "strict", false, "Fail on the first diagnostic")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&f.noColor, "no-color", false, "Disable colored diagnostics")
}

// app is the wired runtime shared by commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
	engine   *engine.Engine
	prom     *prometheus.Registry
}

// newApp loads the project configuration and wires the engine with the
// reference components registered.
func newApp(cmd *cobra.Command, f *globalFlags) (*app, error) {
	dir, err := filepath.Abs(f.dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = f.strict
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f.printer != nil {
		f.printer.SetJSON(cfg.Log.Format == "json")
	}

	a := &app{cfg: cfg, logger: newLogger(cfg)}
	a.registry = registry.New(
		registry.WithLogger(a.logger),
		registry.WithDevMode(cfg.Dev.Enabled),
	)

	opts := []engine.Option{
		engine.WithRegistry(a.registry),
		engine.WithLogger(a.logger),
		engine.WithStrict(cfg.Strict),
	}
	if cfg.Metrics.Enabled {
		a.prom = prometheus.NewRegistry()
		a.prom.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, engine.WithMetrics(engine.NewMetrics(
			engine.WithNamespace(cfg.Metrics.Namespace),
			engine.WithPrometheusRegistry(a.prom),
		)))
	}
	a.engine = engine.New(opts...)

	if err := ui.Register(a.registry, a.engine); err != nil {
		return nil, err
	}
	return a, nil
}

// newLogger writes to stderr so painted output on stdout stays clean.
func newLogger(cfg *config.Config) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts))
}

// parseParams turns key=value pairs into template parameters. Values that
// parse as JSON are decoded; anything else stays a string.
func parseParams(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}

// readSource reads a template from a file, or from stdin for "-".
func readSource(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}
