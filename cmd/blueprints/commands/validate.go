package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/blueprints/internal/blueprint"
	"github.com/bartekus/blueprints/internal/scanner"
	"github.com/bartekus/blueprints/internal/tasks"
)

// NewValidateCommand returns the `blueprints validate` command.
func NewValidateCommand(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <path-or-glob>...",
		Short: "Validate blueprint front matter",
		Long: `Validate checks that each blueprint has front matter declaring every
required field and a non-empty platforms section. Arguments are file paths
or glob patterns such as rules/core/*.mdc or rules/**/*.mdc.

Exits 1 when any blueprint is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if err := a.load(cmd); err != nil {
				return err
			}
			paths, err := a.resolve(args)
			if err != nil {
				return err
			}
			return a.runTask(cmd, "validate", paths, tasks.Options{Strict: strict})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "also require the front matter to parse as YAML")
	return cmd
}

// NewCheckCommand returns the `blueprints check` command.
func NewCheckCommand(a *app) *cobra.Command {
	var (
		strict  bool
		tracked bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate every blueprint under a rules root",
		Long: `Check validates the blueprints directly inside the category folders
(core, languages, technologies, stacks, tasks, assistants, tools) of the
rules root and reports tallies per folder.

Exits 1 when any blueprint is invalid and 4 when the root cannot be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			var (
				paths []string
				err   error
			)
			if tracked {
				paths, err = scanner.DiscoverTracked(cmd.Context(), scanner.New(a.cfg.Root), blueprint.Folders, a.cfg.Extension)
			} else {
				paths, err = scanner.Discover(a.cfg.Root, blueprint.Folders, a.cfg.Extension)
			}
			if err != nil {
				return targetError(err)
			}
			a.log.Debug("blueprints discovered", "root", a.cfg.Root, "count", len(paths), "tracked", tracked)

			return a.runTask(cmd, "check", paths, tasks.Options{Strict: strict})
		},
	}
	cmd.Flags().String("root", ".ai/rules", "rules root directory")
	cmd.Flags().BoolVar(&tracked, "tracked", false, "only check files tracked by git")
	cmd.Flags().BoolVar(&strict, "strict", false, "also require the front matter to parse as YAML")
	return cmd
}
