// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders batch run reports for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/blueprints/internal/runner"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown or json)", s)
}

// Options tune the text renderer.
type Options struct {
	// Color enables ANSI styling when w is a terminal.
	Color bool
}

// Render writes r to w in format f.
func Render(w io.Writer, f Format, r *runner.Report, opts Options) error {
	switch f {
	case FormatText, "":
		return writeText(w, r, opts)
	case FormatMarkdown:
		return writeMarkdown(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	}
	return fmt.Errorf("unknown report format %q", f)
}

type groupJSON struct {
	Name string `json:"name"`
	runner.Tally
	SuccessRate float64 `json:"success_rate"`
}

type reportJSON struct {
	*runner.Report
	Totals      runner.Tally `json:"totals"`
	SuccessRate float64      `json:"success_rate"`
	Changes     int          `json:"changes"`
	Groups      []groupJSON  `json:"groups"`
}

func writeJSON(w io.Writer, r *runner.Report) error {
	out := reportJSON{
		Report:      r,
		Totals:      r.Totals(),
		SuccessRate: r.Totals().SuccessRate(),
		Changes:     r.Changes(),
		Groups:      []groupJSON{},
	}
	for _, name := range r.GroupNames() {
		t := r.Group(name)
		out.Groups = append(out.Groups, groupJSON{Name: name, Tally: t, SuccessRate: t.SuccessRate()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// details is the one-line explanation of an outcome.
func details(o runner.Outcome) string {
	switch o.Status {
	case runner.StatusValid:
		s := fmt.Sprintf("%d platforms", o.PlatformCount)
		if o.ExtendedPlatforms {
			s += ", extended"
		}
		return s
	case runner.StatusUpdated:
		return strings.Join(o.Changes, ", ")
	case runner.StatusUnchanged:
		return "already compliant"
	}
	return o.Reason
}
