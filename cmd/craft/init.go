package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/craft/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		port     int
		bucket   string
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new craft project",
		Long: `Create a craft project with a config file and starter templates.

Templates:
  minimal   craft.json and a single page
  gallery   craft.yaml and a page per reference component

Examples:
  craft init
  craft init docs --template gallery --bucket my-site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(abs, 0755); err != nil {
				return err
			}
			if err := tmpl.Create(abs, templates.Config{
				ProjectName: filepath.Base(abs),
				Port:        port,
				Bucket:      bucket,
			}); err != nil {
				return err
			}

			success("Created %s project in %s", tmpl.Name, abs)
			for _, p := range tmpl.Paths() {
				info(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Preview server port")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket for craft publish")

	return cmd
}
