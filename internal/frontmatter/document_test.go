package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLines []string
		wantBody  string
	}{
		{
			name:      "simple",
			content:   "---\nid: a\ntitle: A\n---\n# Body\n",
			wantLines: []string{"id: a", "title: A"},
			wantBody:  "# Body\n",
		},
		{
			name:      "empty block",
			content:   "---\n---\nbody",
			wantLines: []string{},
			wantBody:  "body",
		},
		{
			name:      "closing delimiter at end of file",
			content:   "---\nid: a\n---",
			wantLines: []string{"id: a"},
			wantBody:  "",
		},
		{
			name:      "trailing whitespace on delimiters",
			content:   "--- \nid: a\n---\t\nbody\n",
			wantLines: []string{"id: a"},
			wantBody:  "body\n",
		},
		{
			name:      "second delimiter inside body is body",
			content:   "---\nid: a\n---\ntext\n---\nmore\n",
			wantLines: []string{"id: a"},
			wantBody:  "text\n---\nmore\n",
		},
		{
			name:      "crlf",
			content:   "---\r\nid: a\r\n---\r\nbody\r\n",
			wantLines: []string{"id: a"},
			wantBody:  "body\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Split(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, doc.Block.Lines())
			assert.Equal(t, tt.wantBody, doc.Body)
			assert.Equal(t, tt.content, doc.String(), "unmodified document must round trip")
		})
	}
}

func TestSplit_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no block", content: "# Title\n\nText\n"},
		{name: "leading blank line", content: "\n---\nid: a\n---\n"},
		{name: "leading text", content: "intro\n---\nid: a\n---\n"},
		{name: "unclosed", content: "---\nid: a\ntitle: b\n"},
		{name: "four hyphens", content: "----\nid: a\n----\n"},
		{name: "closing line with text", content: "---\nid: a\n--- end\n"},
		{name: "delimiter only", content: "---"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.content)
			assert.ErrorIs(t, err, ErrNoFrontmatter)
		})
	}
}

func TestDocument_StringAfterAppend(t *testing.T) {
	doc, err := Split("---\nid: a\n---\nbody\n")
	require.NoError(t, err)

	doc.Block.Append(`license: "MIT"`)
	assert.Equal(t, "---\nid: a\nlicense: \"MIT\"\n---\nbody\n", doc.String())
}

func TestDocument_StringAfterAppend_CRLF(t *testing.T) {
	doc, err := Split("---\r\nid: a\r\n---\r\nbody\r\n")
	require.NoError(t, err)

	doc.Block.Append("license: MIT")
	assert.Equal(t, "---\r\nid: a\r\nlicense: MIT\r\n---\r\nbody\r\n", doc.String())
}
