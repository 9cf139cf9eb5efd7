package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/blueprints/internal/runner"
)

func sampleReport() *runner.Report {
	r := &runner.Report{RunID: "run-1", Task: "check"}
	r.Add(runner.Outcome{Path: "rules/core/a.mdc", Group: "core", Category: "core", Status: runner.StatusValid, PlatformCount: 3, ExtendedPlatforms: true})
	r.Add(runner.Outcome{Path: "rules/core/b.mdc", Group: "core", Category: "core", Status: runner.StatusInvalid, Reason: "Missing required fields: id, title"})
	r.Add(runner.Outcome{Path: "rules/languages/go.mdc", Group: "languages", Category: "language", Status: runner.StatusValid, PlatformCount: 1})
	return r
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "JSON": FormatJSON, "markdown": FormatMarkdown, "md": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.ErrorContains(t, err, `unknown report format "html"`)
}

func TestRenderTable(t *testing.T) {
	got := renderTable([]string{"A", "B"}, [][]string{{"1", "x|y"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 | x\\|y |\n", got)
}

func TestRenderList(t *testing.T) {
	assert.Equal(t, "- a\n- b\n", renderList([]string{"a", "b"}))
}

func TestRenderHeader(t *testing.T) {
	assert.Equal(t, "## Groups\n\n", renderHeader(2, "Groups"))
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, sampleReport(), Options{}))
	out := buf.String()

	assert.Contains(t, out, "✅ rules/core/a.mdc: 3 platforms, extended\n")
	assert.Contains(t, out, "❌ rules/core/b.mdc: Missing required fields: id, title\n")
	assert.Contains(t, out, "Summary (check)")
	assert.Contains(t, out, "Total: 3  Valid: 2  Updated: 1  Errors: 1  Success rate: 66.7%")
	assert.NotContains(t, out, "Enhancements applied")
	assert.Contains(t, out, "  core       2 total, 1 valid, 1 updated, 1 errors\n")
	assert.Contains(t, out, "  languages  1 total, 1 valid, 0 updated, 0 errors\n")
	assert.NotContains(t, out, "\x1b[", "no ANSI codes without color")
}

func TestRender_TextPatch(t *testing.T) {
	r := &runner.Report{RunID: "run-2", Task: "patch", DryRun: true}
	r.Add(runner.Outcome{Path: "a.mdc", Group: "core", Status: runner.StatusUpdated, Changes: []string{"added license", "added platform zed"}})
	r.Add(runner.Outcome{Path: "b.mdc", Group: "core", Status: runner.StatusUnchanged})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, r, Options{}))
	out := buf.String()

	assert.Contains(t, out, "✅ a.mdc: added license, added platform zed\n")
	assert.Contains(t, out, "⚪ b.mdc: already compliant\n")
	assert.Contains(t, out, "  Enhancements applied: 2\n")
	assert.Contains(t, out, "dry run, no files written")
	assert.NotContains(t, out, "Groups", "a single group needs no breakdown")
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMarkdown, sampleReport(), Options{}))
	out := buf.String()

	assert.Contains(t, out, "# Blueprint report: check\n\nRun `run-1`\n\n")
	assert.Contains(t, out, "| `rules/core/b.mdc` | core | invalid | Missing required fields: id, title |\n")
	assert.Contains(t, out, "| core | 2 | 1 | 1 | 1 | 50.0% |\n")
	assert.Contains(t, out, "| **total** | 3 | 2 | 1 | 1 | 66.7% |\n")
	assert.Contains(t, out, "## Failures\n\n- `rules/core/b.mdc`: Missing required fields: id, title\n")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sampleReport(), Options{}))

	var got struct {
		RunID    string           `json:"run_id"`
		Task     string           `json:"task"`
		Outcomes []runner.Outcome `json:"outcomes"`
		Totals   runner.Tally     `json:"totals"`
		Groups   []struct {
			Name  string `json:"name"`
			Total int    `json:"total"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "check", got.Task)
	assert.Len(t, got.Outcomes, 3)
	assert.Equal(t, runner.Tally{Total: 3, Valid: 2, Updated: 1, Errors: 1}, got.Totals)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "core", got.Groups[0].Name)
	assert.Equal(t, 2, got.Groups[0].Total)
}
