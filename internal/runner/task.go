package runner

import (
	"context"
	"log/slog"

	"github.com/bartekus/blueprints/internal/blueprint"
)

// Reader loads document bytes.
type Reader interface {
	Read(path string) ([]byte, error)
}

// Deps contains dependencies injected into tasks.
type Deps struct {
	Store  Reader
	Logger *slog.Logger
}

// Target is one document to process.
type Target struct {
	Path     string
	Category blueprint.Category
	// Group is the category folder the document sits in, or the category
	// name when it sits in none.
	Group string
}

// NewTarget derives the category and group of path.
func NewTarget(path string) Target {
	c, folder := blueprint.CategoryFromPath(path)
	group := folder
	if group == "" {
		group = c.String()
	}
	return Target{Path: path, Category: c, Group: group}
}

// Task is the per-document unit of work of a batch run.
type Task interface {
	// ID returns the unique identifier (e.g. "validate").
	ID() string

	// Run processes one document. Failures are reported in the outcome,
	// never returned.
	Run(ctx context.Context, deps *Deps, t Target) Outcome
}
