package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/craft/internal/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		params []string
		bucket string
		prefix string
		region string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "publish <template>",
		Short: "Paint a template and upload it to S3",
		Long: `Paint a template as a full page and upload it to
s3://<bucket>/<prefix>/<name>.html.

Bucket, prefix and region default to the "publish" section of the
project configuration. AWS credentials come from the usual environment
and shared config files.

Examples:
  craft publish templates/home.html
  craft publish docs.html --bucket my-site --prefix preview --param title=Docs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			if bucket == "" {
				bucket = a.cfg.Publish.Bucket
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = a.cfg.Publish.Prefix
			}
			if region == "" {
				region = a.cfg.Publish.Region
			}
			values, err := parseParams(params)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = pageName(a.cfg.TemplatesPath(), args[0])
			}

			client, err := publish.NewClient(cmd.Context(), region)
			if err != nil {
				return err
			}
			p, err := publish.New(client, bucket, prefix, publish.WithLogger(a.logger))
			if err != nil {
				return err
			}
			obj, err := p.PublishTemplate(cmd.Context(), a.engine, name, src, values)
			if err != nil {
				return err
			}
			success("Published %s (%d bytes)", obj.URI(), obj.Size)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Template parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from config or environment)")
	cmd.Flags().StringVar(&name, "name", "", "Page name (default: path relative to the template directory)")

	return cmd
}

// pageName names a template file by its path under the template
// directory, or by its base name when it lives elsewhere.
func pageName(templates, file string) string {
	if file == "-" {
		return "index"
	}
	abs, err := filepath.Abs(file)
	if err == nil {
		if rel, err := filepath.Rel(templates, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(file)
}
