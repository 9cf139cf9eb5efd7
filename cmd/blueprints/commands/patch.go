package commands

import (
	"github.com/spf13/cobra"

	"github.com/bartekus/blueprints/internal/tasks"
)

// NewEnhanceCommand returns the `blueprints enhance` command.
func NewEnhanceCommand(a *app) *cobra.Command {
	return newPatchCommand(a, "enhance",
		"Add missing schemaVersion, license, repositoryUrl and tags",
		`Enhance appends schemaVersion, license, repositoryUrl and category tags
to blueprints that lack them. Values come from the metadata tables and can
be overridden with the schema_version, license and repository_url settings.`)
}

// NewUpdateCommand returns the `blueprints update` command.
func NewUpdateCommand(a *app) *cobra.Command {
	return newPatchCommand(a, "update",
		"Add missing platform blocks",
		`Update appends the default configuration of every platform listed for
the blueprint's category that its platforms section does not declare yet.
The category is taken from the folder the blueprint sits in.`)
}

// NewPatchCommand returns the `blueprints patch` command.
func NewPatchCommand(a *app) *cobra.Command {
	return newPatchCommand(a, "patch",
		"Run enhance and update in one pass",
		`Patch appends missing metadata fields and missing platform blocks in a
single rewrite of each blueprint.`)
}

func newPatchCommand(a *app, id, short, long string) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   id + " <path-or-glob>...",
		Short: short,
		Long: long + `

Existing lines are never changed or reordered, and a blueprint that is
already complete is not rewritten. Failures are reported per blueprint;
the command itself exits 0 unless targets cannot be resolved.`,
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
			return a.runTask(cmd, id, paths, tasks.Options{DryRun: dryRun})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	return cmd
}
