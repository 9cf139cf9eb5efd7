package tasks

import (
	"context"

	"github.com/bartekus/blueprints/internal/blueprint"
	"github.com/bartekus/blueprints/internal/runner"
)

// Patch appends missing metadata to each document and rewrites it.
type Patch struct {
	id      string
	patcher *blueprint.Patcher
}

// NewPatch returns a patch task applying steps, registered under id.
func NewPatch(id string, steps blueprint.Step, opts Options) runner.Task {
	p := blueprint.NewPatcher(opts.Tables, steps, opts.Writer)
	p.DryRun = opts.DryRun
	return &Patch{id: id, patcher: p}
}

func (s *Patch) ID() string { return s.id }

func (s *Patch) Run(_ context.Context, deps *runner.Deps, t runner.Target) runner.Outcome {
	out := outcome(t)

	data, err := deps.Store.Read(t.Path)
	if err != nil {
		out.Status = runner.StatusError
		out.Reason = err.Error()
		deps.Logger.Warn("document unreadable", "path", t.Path, "err", err)
		return out
	}

	res := s.patcher.Patch(t.Path, data, t.Category)
	switch {
	case !res.Success:
		out.Status = runner.StatusError
		out.Reason = res.Reason()
	case len(res.Changes) > 0:
		out.Status = runner.StatusUpdated
		out.Changes = res.Changes
		deps.Logger.Debug("document patched", "path", t.Path, "changes", res.Changes)
	default:
		out.Status = runner.StatusUnchanged
	}
	return out
}
