// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docstore reads blueprint files and replaces them atomically.
package docstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	defaultFilePerm fs.FileMode = 0o644
	defaultDirPerm  fs.FileMode = 0o755
)

// FS is the on-disk document store. The zero value is ready to use.
type FS struct{}

// Read returns the bytes of the file at path.
func (FS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Write replaces path with data. Readers observe either the old or the
// new content, never a partial file. The replacement is staged next to
// path with its final mode, so an existing file keeps its mode throughout.
func (FS) Write(path string, data []byte) error {
	perm := defaultFilePerm
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.Mode().IsRegular() {
			return fmt.Errorf("writing %s: not a regular file", path)
		}
		perm = info.Mode().Perm()
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}

	tmp, err := stage(path, data, perm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := atomic.ReplaceFile(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// stage writes data to a temporary file in the directory of path and
// returns its name. The file is removed on failure.
func stage(path string, data []byte, perm fs.FileMode) (name string, err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", err
	}
	if err = f.Chmod(perm); err != nil {
		return "", err
	}
	if err = f.Sync(); err != nil {
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}
