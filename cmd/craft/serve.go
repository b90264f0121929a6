package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/craft/internal/dev"
	"github.com/vango-dev/craft/internal/preview"
	"github.com/vango-dev/craft/pkg/registry"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		devMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start the preview server.

The server shows a gallery of registered components, paints single
components from query parameters, and paints template files under
/pages/. In dev mode, template changes reload open pages.

Examples:
  craft serve
  craft serve --port=8080 --dev
  CRAFT_DEV=1 craft serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			if port > 0 {
				a.cfg.Dev.Port = port
			}
			if host != "" {
				a.cfg.Dev.Host = host
			}
			if devMode {
				a.cfg.Dev.Enabled = true
				a.cfg.Dev.HotReload = true
				a.registry.SetDevMode(true)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable hot reload")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	opts := preview.Options{
		Engine:       a.engine,
		Logger:       a.logger,
		TemplatesDir: a.cfg.TemplatesPath(),
		Namespace:    a.cfg.Metrics.Namespace,
	}
	if a.cfg.Name != "" {
		opts.Title = a.cfg.Name
	}
	if a.prom != nil {
		opts.Gatherer = a.prom
		opts.Registerer = a.prom
	}

	if a.cfg.Dev.Enabled && a.cfg.Dev.HotReload {
		hub := dev.NewReloadServer(a.logger)
		opts.Reload = hub

		w, err := dev.NewWatcher(dev.WatcherConfig{Paths: a.cfg.WatchPaths()}, a.logger)
		if err != nil {
			return err
		}
		defer w.Close()
		w.OnChange(hub.Notify)
		go w.Start(ctx)

		cancel := a.registry.OnChange(func(c registry.Change) {
			a.logger.Debug("registry changed", "kind", c.Kind, "name", c.Name)
			hub.NotifyReload()
		})
		defer cancel()
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Preview at %s", a.cfg.DevURL())
	info("Templates: %s", a.cfg.TemplatesPath())
	if opts.Reload != nil {
		info("Hot reload enabled")
	}
	if opts.Gatherer != nil {
		info("Metrics at %s/metrics", a.cfg.DevURL())
	}
	fmt.Println()

	return preview.New(opts).ListenAndServe(ctx, a.cfg.DevAddress())
}
