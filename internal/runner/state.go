package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateStore handles reading and writing run reports.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .blueprints/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) taskPath(task string) string {
	return filepath.Join(s.baseDir, "tasks", task+".json")
}

// ReadLastRun loads the most recent report. A missing file is a clean
// state and returns nil, nil.
func (s *StateStore) ReadLastRun() (*Report, error) {
	return readReport(s.lastRunPath())
}

// ReadTaskReport loads the most recent report of task.
func (s *StateStore) ReadTaskReport(task string) (*Report, error) {
	return readReport(s.taskPath(task))
}

// WriteLastRun saves report as the most recent run.
func (s *StateStore) WriteLastRun(report *Report) error {
	return writeReport(s.lastRunPath(), report)
}

// WriteTaskReport saves report as the most recent run of its task.
func (s *StateStore) WriteTaskReport(report *Report) error {
	return writeReport(s.taskPath(report.Task), report)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

func readReport(path string) (*Report, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from the state dir
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var report Report
	if err := json.NewDecoder(f).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &report, nil
}

func writeReport(path string, report *Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path is derived from the state dir
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
