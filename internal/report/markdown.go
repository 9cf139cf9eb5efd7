// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/blueprints/internal/runner"
)

// renderTable renders a Markdown table, escaping pipes in cells.
func renderTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCell(cell)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return b.String()
}

// renderList renders an unordered Markdown list.
func renderList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}

// renderHeader renders a Markdown header.
func renderHeader(level int, text string) string {
	return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeMarkdown(w io.Writer, r *runner.Report) error {
	var b strings.Builder

	b.WriteString(renderHeader(1, "Blueprint report: "+r.Task))
	fmt.Fprintf(&b, "Run `%s`", r.RunID)
	if r.DryRun {
		b.WriteString(" (dry run, no files written)")
	}
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		rows = append(rows, []string{"`" + o.Path + "`", o.Group, string(o.Status), details(o)})
	}
	b.WriteString(renderTable([]string{"Path", "Group", "Status", "Details"}, rows))
	b.WriteString("\n")

	b.WriteString(renderHeader(2, "Groups"))
	groupRows := make([][]string, 0)
	for _, name := range r.GroupNames() {
		groupRows = append(groupRows, tallyRow(name, r.Group(name)))
	}
	groupRows = append(groupRows, tallyRow("**total**", r.Totals()))
	b.WriteString(renderTable([]string{"Group", "Total", "Valid", "Updated", "Errors", "Success"}, groupRows))

	if failed := r.Failed(); len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(renderHeader(2, "Failures"))
		items := make([]string, len(failed))
		for i, o := range failed {
			items[i] = fmt.Sprintf("`%s`: %s", o.Path, o.Reason)
		}
		b.WriteString(renderList(items))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func tallyRow(name string, t runner.Tally) []string {
	return []string{
		name,
		fmt.Sprint(t.Total),
		fmt.Sprint(t.Valid),
		fmt.Sprint(t.Updated),
		fmt.Sprint(t.Errors),
		fmt.Sprintf("%.1f%%", t.SuccessRate()),
	}
}
