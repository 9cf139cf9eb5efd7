// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Blueprints - validates and augments the metadata of Markdown rule blueprints.
It checks front matter for required fields and platform declarations, and appends missing metadata and platform blocks without disturbing existing content.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the blueprints root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("BLUEPRINTS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	a := &app{}
	cmd := &cobra.Command{
		Use:   "blueprints",
		Short: "Blueprints - metadata validation and patching for Markdown rule blueprints",
		Long: `Blueprints validates the front matter of Markdown rule blueprints and
appends missing metadata and platform blocks in place, leaving every
existing line untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default .blueprints.yaml in . or $HOME)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.String("log-format", "text", "diagnostic log format: text or json")
	pf.Int("jobs", 1, "number of blueprints processed in parallel")
	pf.String("ext", ".mdc", "blueprint file extension")
	pf.String("state-dir", "", "directory keeping the last run report (disabled when empty)")
	pf.String("format", "text", "report format: text, markdown or json")
	pf.String("tables", "", "metadata tables file replacing the built-in tables")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Blueprints",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Blueprints version %s\n", version)
		},
	})

	cmd.AddCommand(NewValidateCommand(a))
	cmd.AddCommand(NewCheckCommand(a))
	cmd.AddCommand(NewEnhanceCommand(a))
	cmd.AddCommand(NewUpdateCommand(a))
	cmd.AddCommand(NewPatchCommand(a))
	cmd.AddCommand(NewTablesCommand(a))
	cmd.AddCommand(NewReportCommand(a))

	return cmd
}
