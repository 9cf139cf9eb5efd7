package commands

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bartekus/blueprints/cmd/blueprints/internal/clierr"
	"github.com/bartekus/blueprints/internal/docstore"
	"github.com/bartekus/blueprints/internal/report"
	"github.com/bartekus/blueprints/internal/runner"
	"github.com/bartekus/blueprints/internal/tasks"
)

// NewReportCommand returns the `blueprints report` command.
func NewReportCommand(a *app) *cobra.Command {
	var (
		reset  bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "report [task]",
		Short: "Show the last run report",
		Long: fmt.Sprintf(`Report renders the last saved run, or the last run of one task
(%v), from the state directory. Runs are saved only when a state
directory is configured.`, tasks.IDs()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !slices.Contains(tasks.IDs(), args[0]) {
				return clierr.Newf(clierr.ExitUsage, "report: unknown task %q (want one of %v)", args[0], tasks.IDs())
			}
			if err := a.load(cmd); err != nil {
				return err
			}
			store := a.stateStore()
			if store == nil {
				return clierr.New(clierr.ExitUsage, "report: no state directory configured (use --state-dir)")
			}
			if reset {
				return store.Reset()
			}

			var (
				last *runner.Report
				err  error
			)
			if len(args) == 1 {
				last, err = store.ReadTaskReport(args[0])
			} else {
				last, err = store.ReadLastRun()
			}
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "report", err)
			}
			if last == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No run state found.")
				return nil
			}
			if output == "" {
				return a.render(cmd, last)
			}

			var buf bytes.Buffer
			if err := report.Render(&buf, a.format, last, report.Options{}); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			if err := (docstore.FS{}).Write(output, buf.Bytes()); err != nil {
				return clierr.Wrap(clierr.ExitFailure, "report", err)
			}
			a.log.Info("report written", "path", output, "run_id", last.RunID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the state directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}
