package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/craft/pkg/engine"
	"github.com/vango-dev/craft/pkg/render"
	"github.com/vango-dev/craft/pkg/tmpl"
)

func paintCmd(flags *globalFlags) *cobra.Command {
	var (
		params []string
		page   bool
		pretty bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "paint <template|->",
		Short: "Paint a template to HTML",
		Long: `Paint a template and print the resulting HTML.

Parameters are passed as key=value pairs. Values that parse as JSON
(numbers, booleans, objects, arrays) are decoded.

Examples:
  craft paint templates/home.html
  craft paint card.html --param title=Stats --pretty
  echo '<Button>Go</Button>' | craft paint -
  craft paint page.html --page -o dist/page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			values, err := parseParams(params)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			name := args[0]
			if name == "-" {
				name = "stdin"
			}
			t, err := tmpl.CompileNamed(name, src)
			if err != nil {
				return err
			}
			rs, err := a.engine.PaintTemplate(t, values)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			r := render.NewRenderer(render.RendererConfig{Pretty: pretty})
			if page {
				err = r.RenderPage(&buf, render.PageData{
					Title: a.cfg.Name,
					Body:  engine.Nodes(rs),
				})
			} else {
				err = r.RenderNodes(&buf, engine.Nodes(rs))
				buf.WriteByte('\n')
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
				return err
			}
			return os.WriteFile(output, buf.Bytes(), 0644)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Template parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the output in a full HTML document")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent block elements")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
