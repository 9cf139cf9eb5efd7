package runner

import (
	"github.com/google/uuid"
)

// Status is the verdict recorded for one document.
type Status string

const (
	StatusValid     Status = "valid"
	StatusInvalid   Status = "invalid"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusError     Status = "error"
)

// Failed reports whether the status counts against the run.
func (s Status) Failed() bool {
	return s == StatusInvalid || s == StatusError
}

// Outcome is the report entry for one document.
// Matches the entries of <state-dir>/last-run.json.
type Outcome struct {
	Path              string   `json:"path"`
	Group             string   `json:"group"`
	Category          string   `json:"category"`
	Status            Status   `json:"status"`
	Reason            string   `json:"reason,omitempty"`
	Changes           []string `json:"changes,omitempty"`
	PlatformCount     int      `json:"platform_count,omitempty"`
	ExtendedPlatforms bool     `json:"extended_platforms,omitempty"`
}

// Tally counts outcomes of a group or a whole run. Updated counts
// rewritten documents in patch runs and valid documents that declare an
// extended platform in validation runs.
type Tally struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

func (t *Tally) add(o Outcome) {
	t.Total++
	switch {
	case o.Status == StatusValid:
		t.Valid++
		if o.ExtendedPlatforms {
			t.Updated++
		}
	case o.Status == StatusUpdated:
		t.Updated++
	case o.Status.Failed():
		t.Errors++
	}
}

// SuccessRate is the percentage of documents that did not fail, or 0 for
// an empty tally.
func (t Tally) SuccessRate() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Total-t.Errors) / float64(t.Total) * 100
}

// Report is the result of one batch run. Outcomes keep input order.
type Report struct {
	RunID    string    `json:"run_id"`
	Task     string    `json:"task"`
	DryRun   bool      `json:"dry_run,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
}

// NewReport starts an empty report for task with a fresh run id.
func NewReport(task string) *Report {
	return &Report{
		RunID:    uuid.NewString(),
		Task:     task,
		Outcomes: []Outcome{},
	}
}

// Add appends an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Totals tallies every outcome.
func (r *Report) Totals() Tally {
	var t Tally
	for _, o := range r.Outcomes {
		t.add(o)
	}
	return t
}

// GroupNames lists the groups in order of first appearance.
func (r *Report) GroupNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, o := range r.Outcomes {
		if !seen[o.Group] {
			seen[o.Group] = true
			names = append(names, o.Group)
		}
	}
	return names
}

// Group tallies the outcomes of one group.
func (r *Report) Group(name string) Tally {
	var t Tally
	for _, o := range r.Outcomes {
		if o.Group == name {
			t.add(o)
		}
	}
	return t
}

// Patched reports whether the run rewrote documents rather than validating
// them.
func (r *Report) Patched() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusUpdated || o.Status == StatusUnchanged {
			return true
		}
	}
	return false
}

// Changes counts the enhancements applied across the run.
func (r *Report) Changes() int {
	n := 0
	for _, o := range r.Outcomes {
		n += len(o.Changes)
	}
	return n
}

// Failed lists the outcomes that count against the run.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}
