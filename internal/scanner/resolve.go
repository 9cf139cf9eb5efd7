package scanner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// UnreadableDirectoryError reports a directory named by a pattern or a
// rules root that could not be listed. It aborts the whole run.
type UnreadableDirectoryError struct {
	Dir string
	Err error
}

func (e *UnreadableDirectoryError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Dir, e.Err)
}

func (e *UnreadableDirectoryError) Unwrap() error { return e.Err }

// Resolve expands every argument and returns the targets in argument order,
// each path once.
func Resolve(args []string, ext string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		paths, err := Expand(arg, ext)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// Expand turns one argument into target paths. An argument without glob
// metacharacters is returned as is; reading it is the caller's concern.
// A pattern such as "rules/core/*.mdc" or "rules/**/*.mdc" is matched
// against files below its fixed directory prefix, keeping names that end
// in ext, sorted.
func Expand(pattern, ext string) ([]string, error) {
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}

	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	dir := filepath.FromSlash(base)
	if _, err := os.ReadDir(dir); err != nil {
		return nil, &UnreadableDirectoryError{Dir: dir, Err: err}
	}

	matches, err := doublestar.Glob(os.DirFS(dir), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}
	matches = FilterFiles(matches, FilterOptions{
		ExcludeDirs:       DefaultExcludeDirs(),
		IncludeExtensions: extensions(ext),
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return out, nil
}

// Discover lists the blueprints directly inside the category folders of
// root, folder by folder in the order given. Missing folders are skipped.
func Discover(root string, folders []string, ext string) ([]string, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, &UnreadableDirectoryError{Dir: root, Err: err}
	}

	fsys := os.DirFS(root)
	var out []string
	for _, folder := range folders {
		info, err := os.Stat(filepath.Join(root, folder))
		if err != nil || !info.IsDir() {
			continue
		}
		matches, err := doublestar.Glob(fsys, folder+"/*", doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, &UnreadableDirectoryError{Dir: filepath.Join(root, folder), Err: err}
		}
		for _, m := range FilterFiles(matches, FilterOptions{IncludeExtensions: extensions(ext)}) {
			out = append(out, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	return out, nil
}

// DiscoverTracked is Discover restricted to files git tracks below the
// scanner root.
func DiscoverTracked(ctx context.Context, s *Scanner, folders []string, ext string) ([]string, error) {
	tracked, err := s.TrackedFilesFiltered(ctx, FilterOptions{IncludeExtensions: extensions(ext)})
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(folders))
	for i, f := range folders {
		rank[f] = i
	}
	pattern := "{" + strings.Join(folders, ",") + "}/*"

	var matched []string
	for _, p := range tracked {
		if ok, _ := doublestar.Match(pattern, p); ok {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return rank[topDir(matched[i])] < rank[topDir(matched[j])]
	})

	out := make([]string, len(matched))
	for i, m := range matched {
		out[i] = filepath.Join(s.Root(), filepath.FromSlash(m))
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func extensions(ext string) []string {
	if ext == "" {
		return nil
	}
	return []string{ext}
}

func topDir(p string) string {
	dir, _, _ := strings.Cut(path.Clean(p), "/")
	return dir
}
