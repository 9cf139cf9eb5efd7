package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewTablesCommand returns the `blueprints tables` command.
func NewTablesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the effective metadata tables as YAML",
		Long: `Tables prints the required fields, tag lists, platform defaults and
enrichment values in effect after configuration is applied. The output can
be edited and passed back with --tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.tables); err != nil {
				return fmt.Errorf("encoding tables: %w", err)
			}
			return enc.Close()
		},
	}
}
