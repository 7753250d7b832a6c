package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jxwalker/pakeshell/internal/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the settings and the application/host configuration pair",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "print",
			Short: "Print settings and both configuration documents as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, host, err := config.LoadDocuments(e.provider())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"settings": e.settings,
					"source":   e.provider().Name(),
					"app":      app,
					"host":     host,
				})
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Parse both configuration documents",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p := e.provider()
				if _, _, err := config.LoadDocuments(p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "config: valid (source %s)\n", p.Name())
				return nil
			},
		},
	)
	return cmd
}
