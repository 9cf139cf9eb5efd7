package runner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Runner applies one task to a list of documents.
type Runner struct {
	task  Task
	store *StateStore
	deps  *Deps
	jobs  int
	// DryRun is recorded in the report.
	DryRun bool
}

// NewRunner creates a runner for task. A nil store disables persisting the
// last run; jobs below 1 means sequential processing.
func NewRunner(task Task, store *StateStore, deps *Deps, jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		task:  task,
		store: store,
		deps:  deps,
		jobs:  jobs,
	}
}

// Run processes every path and returns the report in input order.
// Per-document failures are part of the report; an error is returned only
// when the run was cancelled or its state could not be saved.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	id := r.task.ID()
	log := r.deps.Logger.With("task", id)
	log.Debug("run started", "documents", len(paths), "jobs", r.jobs)

	// Each worker owns one slot, so no locking is needed.
	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := r.task.Run(gctx, r.deps, NewTarget(path))
			log.Debug("document processed", "path", o.Path, "status", o.Status, "changes", len(o.Changes))
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}

	report := NewReport(id)
	report.DryRun = r.DryRun
	for _, o := range outcomes {
		report.Add(o)
	}

	totals := report.Totals()
	log.Info("run finished",
		"run_id", report.RunID,
		"total", totals.Total,
		"updated", totals.Updated,
		"errors", totals.Errors)

	if r.store != nil {
		if err := r.store.WriteLastRun(report); err != nil {
			return report, fmt.Errorf("writing last run: %w", err)
		}
		if err := r.store.WriteTaskReport(report); err != nil {
			return report, fmt.Errorf("writing %s report: %w", id, err)
		}
	}
	return report, nil
}
