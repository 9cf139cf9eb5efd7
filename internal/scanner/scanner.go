package scanner

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Scanner lists the git-tracked files below a directory.
type Scanner struct {
	root string

	mu           sync.Mutex
	trackedCache []string
}

// New creates a Scanner rooted at dir. Dir may be any directory inside a
// git work tree; listed paths are relative to it.
func New(dir string) *Scanner {
	return &Scanner{
		root: dir,
	}
}

// Root returns the directory the scanner lists.
func (s *Scanner) Root() string { return s.root }

// TrackedFiles returns all files tracked by git below the root, caching the
// result for the instance lifetime. Ignored and untracked files are never
// returned.
func (s *Scanner) TrackedFiles(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trackedCache != nil {
		return s.trackedCache, nil
	}

	// -z avoids quoting of unusual file names.
	cmd := exec.CommandContext(ctx, "git", "ls-files", "-z")
	cmd.Dir = s.root
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files in %s: %w", s.root, err)
	}

	if len(out) == 0 {
		s.trackedCache = []string{}
		return s.trackedCache, nil
	}

	files := strings.Split(strings.TrimSuffix(string(out), "\x00"), "\x00")
	s.trackedCache = files
	return s.trackedCache, nil
}

// TrackedFilesFiltered returns tracked files matching the filter options.
func (s *Scanner) TrackedFilesFiltered(ctx context.Context, opts FilterOptions) ([]string, error) {
	all, err := s.TrackedFiles(ctx)
	if err != nil {
		return nil, err
	}
	return FilterFiles(all, opts), nil
}
