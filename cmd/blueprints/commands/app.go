package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bartekus/blueprints/cmd/blueprints/internal/clierr"
	"github.com/bartekus/blueprints/internal/blueprint"
	"github.com/bartekus/blueprints/internal/config"
	"github.com/bartekus/blueprints/internal/docstore"
	"github.com/bartekus/blueprints/internal/report"
	"github.com/bartekus/blueprints/internal/runner"
	"github.com/bartekus/blueprints/internal/scanner"
	"github.com/bartekus/blueprints/internal/tasks"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	configFile string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	log    *slog.Logger
	tables *blueprint.Tables
	format report.Format
}

// load reads configuration, builds the logger and loads the tables.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "configuration", err)
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := config.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "configuration", err)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "configuration", err)
	}

	var tables *blueprint.Tables
	if cfg.Tables != "" {
		tables, err = blueprint.LoadTables(cfg.Tables)
	} else {
		tables, err = blueprint.DefaultTables()
	}
	if err != nil {
		return clierr.Wrap(clierr.ExitUsage, "loading tables", err)
	}
	tables = tables.WithDefaults(blueprint.Defaults{
		SchemaVersion: cfg.SchemaVersion,
		License:       cfg.License,
		RepositoryURL: cfg.RepositoryURL,
	})

	if cfg.File != "" {
		log.Debug("config loaded", "file", cfg.File)
	}

	a.cfg, a.log, a.tables, a.format = cfg, log, tables, format
	return nil
}

func (a *app) stateStore() *runner.StateStore {
	if a.cfg.StateDir == "" {
		return nil
	}
	return runner.NewStateStore(a.cfg.StateDir)
}

func (a *app) render(cmd *cobra.Command, r *runner.Report) error {
	return report.Render(cmd.OutOrStdout(), a.format, r, report.Options{Color: !a.noColor})
}

// resolve expands the document arguments of a command.
func (a *app) resolve(args []string) ([]string, error) {
	paths, err := scanner.Resolve(args, a.cfg.Extension)
	if err != nil {
		return nil, targetError(err)
	}
	return paths, nil
}

// runTask runs task id over paths and renders the report. Validation
// tasks fail the command when any blueprint is invalid; patch tasks only
// fail when the run itself could not complete.
func (a *app) runTask(cmd *cobra.Command, id string, paths []string, opts tasks.Options) error {
	opts.Tables = a.tables
	opts.Writer = docstore.FS{}
	task, err := tasks.Lookup(id, opts)
	if err != nil {
		return err
	}

	r := runner.NewRunner(task, a.stateStore(), &runner.Deps{Store: docstore.FS{}, Logger: a.log}, a.cfg.Jobs)
	r.DryRun = opts.DryRun
	rep, err := r.Run(cmd.Context(), paths)
	if rep == nil {
		return clierr.Wrap(clierr.ExitFailure, id, err)
	}
	if rerr := a.render(cmd, rep); rerr != nil {
		return fmt.Errorf("rendering report: %w", rerr)
	}
	if err != nil {
		return clierr.Wrap(clierr.ExitFailure, id, err)
	}

	if failed := rep.Failed(); len(failed) > 0 && tasks.Validates(id) {
		return clierr.Newf(clierr.ExitFailure, "%d of %d blueprints failed validation", len(failed), len(rep.Outcomes))
	}
	return nil
}

func targetError(err error) error {
	var unreadable *scanner.UnreadableDirectoryError
	if errors.As(err, &unreadable) {
		return clierr.Wrap(clierr.ExitFileSystem, "resolving targets", err)
	}
	return clierr.Wrap(clierr.ExitFailure, "resolving targets", err)
}
