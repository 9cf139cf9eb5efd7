// Package tasks holds the per-document tasks the CLI runs in batch.
package tasks

import (
	"fmt"

	"github.com/bartekus/blueprints/internal/blueprint"
	"github.com/bartekus/blueprints/internal/runner"
)

// Options configures the tasks built by Lookup.
type Options struct {
	Tables *blueprint.Tables
	// Strict makes validators decode the metadata as YAML.
	Strict bool
	// DryRun makes patch tasks report changes without writing.
	DryRun bool
	// Writer persists patched documents.
	Writer blueprint.Writer
}

type entry struct {
	id    string
	build func(Options) runner.Task
}

// registry defines the canonical order of tasks.
var registry = []entry{
	{"validate", func(o Options) runner.Task { return NewValidate("validate", o) }},
	{"check", func(o Options) runner.Task { return NewValidate("check", o) }},
	{"enhance", func(o Options) runner.Task { return NewPatch("enhance", blueprint.StepMetadata, o) }},
	{"update", func(o Options) runner.Task { return NewPatch("update", blueprint.StepPlatforms, o) }},
	{"patch", func(o Options) runner.Task { return NewPatch("patch", blueprint.StepAll, o) }},
}

// IDs lists the registered task ids.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.id
	}
	return ids
}

// Lookup builds the task registered under id.
func Lookup(id string, opts Options) (runner.Task, error) {
	if opts.Tables == nil {
		return nil, fmt.Errorf("task %s: no tables", id)
	}
	for _, e := range registry {
		if e.id == id {
			return e.build(opts), nil
		}
	}
	return nil, fmt.Errorf("task not found: %s", id)
}

// Validates reports whether id names a validation task, whose failures
// make the command exit non-zero.
func Validates(id string) bool {
	return id == "validate" || id == "check"
}
