// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bartekus/blueprints/internal/runner"
)

type styles struct {
	ok, fail, skip, faint, title lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skip:  r.NewStyle().Foreground(lipgloss.Color("8")),
		faint: r.NewStyle().Faint(true),
		title: r.NewStyle().Bold(true),
	}
}

func (s styles) icon(st runner.Status) string {
	switch st {
	case runner.StatusValid, runner.StatusUpdated:
		return s.ok.Render("✅")
	case runner.StatusUnchanged:
		return s.skip.Render("⚪")
	}
	return s.fail.Render("❌")
}

func writeText(w io.Writer, r *runner.Report, opts Options) error {
	st := newStyles(w, opts.Color)
	var b strings.Builder

	for _, o := range r.Outcomes {
		line := fmt.Sprintf("%s %s", st.icon(o.Status), o.Path)
		if d := details(o); d != "" {
			if o.Status.Failed() {
				d = st.fail.Render(d)
			} else {
				d = st.faint.Render(d)
			}
			line += ": " + d
		}
		b.WriteString(line + "\n")
	}

	totals := r.Totals()
	b.WriteString("\n" + st.title.Render("Summary ("+r.Task+")") + "\n")
	fmt.Fprintf(&b, "  Total: %d  Valid: %d  Updated: %d  Errors: %d  Success rate: %.1f%%\n",
		totals.Total, totals.Valid, totals.Updated, totals.Errors, totals.SuccessRate())
	if r.Patched() {
		fmt.Fprintf(&b, "  Enhancements applied: %d\n", r.Changes())
	}
	if r.DryRun {
		b.WriteString("  " + st.faint.Render("dry run, no files written") + "\n")
	}

	if names := r.GroupNames(); len(names) > 1 {
		width := 0
		for _, name := range names {
			width = max(width, len(name))
		}
		b.WriteString("\n" + st.title.Render("Groups") + "\n")
		for _, name := range names {
			t := r.Group(name)
			fmt.Fprintf(&b, "  %-*s  %d total, %d valid, %d updated, %d errors\n",
				width, name, t.Total, t.Valid, t.Updated, t.Errors)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
