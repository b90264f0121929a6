package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type componentInfo struct {
	Name           string   `json:"name"`
	AllowsChildren bool     `json:"allowsChildren"`
	Subcomponents  []string `json:"subcomponents,omitempty"`
}

func componentsCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List registered components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			var list []componentInfo
			for _, name := range a.registry.Names() {
				ci := componentInfo{Name: name, AllowsChildren: a.registry.Get(name).AllowsChildren}
				for _, sub := range a.registry.Subcomponents(name) {
					ci.Subcomponents = append(ci.Subcomponents, sub.FullName)
				}
				list = append(list, ci)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			for _, ci := range list {
				line := ci.Name
				if ci.AllowsChildren {
					line += " (children)"
				}
				if len(ci.Subcomponents) > 0 {
					line += "  " + strings.Join(ci.Subcomponents, ", ")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
