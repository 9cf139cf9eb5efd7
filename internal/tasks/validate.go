package tasks

import (
	"context"

	"github.com/bartekus/blueprints/internal/blueprint"
	"github.com/bartekus/blueprints/internal/runner"
)

// Validate checks each document against the required-field schema.
type Validate struct {
	id        string
	validator *blueprint.Validator
}

// NewValidate returns a validation task registered under id.
func NewValidate(id string, opts Options) runner.Task {
	v := blueprint.NewValidator(opts.Tables)
	v.Strict = opts.Strict
	return &Validate{id: id, validator: v}
}

func (s *Validate) ID() string { return s.id }

func (s *Validate) Run(_ context.Context, deps *runner.Deps, t runner.Target) runner.Outcome {
	out := outcome(t)

	data, err := deps.Store.Read(t.Path)
	if err != nil {
		out.Status = runner.StatusError
		out.Reason = err.Error()
		deps.Logger.Warn("document unreadable", "path", t.Path, "err", err)
		return out
	}

	res := s.validator.Validate(data)
	if !res.Valid {
		out.Status = runner.StatusInvalid
		out.Reason = res.Reason()
		return out
	}
	out.Status = runner.StatusValid
	out.PlatformCount = res.PlatformCount
	out.ExtendedPlatforms = res.HasExtendedPlatforms
	return out
}

func outcome(t runner.Target) runner.Outcome {
	return runner.Outcome{
		Path:     t.Path,
		Group:    t.Group,
		Category: t.Category.String(),
	}
}
