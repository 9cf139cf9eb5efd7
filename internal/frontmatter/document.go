// SPDX-License-Identifier: AGPL-3.0-or-later

// Package frontmatter locates the metadata block at the top of a blueprint
// document and edits it as text. It never decodes the block; queries and
// mutations work on lines so that everything the caller does not touch is
// written back byte-for-byte.
package frontmatter

import (
	"errors"
	"strings"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// ErrNoFrontmatter is returned when a document does not start with a
// delimited metadata block.
var ErrNoFrontmatter = errors.New("no YAML frontmatter found")

// Document is a blueprint split into its metadata block and body.
type Document struct {
	// Open and Close are the delimiter lines exactly as written, without
	// the trailing "\n".
	Open  string
	Close string

	Block *Block
	Body  string

	// closedAtEOF records a closing delimiter with no line break after it.
	closedAtEOF bool
}

// Split locates the metadata block. The first line must be a delimiter;
// the block ends at the next delimiter line. Anything else is rejected
// with ErrNoFrontmatter rather than parsed partially.
func Split(content string) (*Document, error) {
	open, rest, ok := cutLine(content)
	if !ok || !isDelimiter(open) {
		return nil, ErrNoFrontmatter
	}

	eol := ""
	if strings.HasSuffix(open, "\r") {
		eol = "\r"
	}

	var lines []string
	for rest != "" {
		line, next, hasBreak := cutLine(rest)
		if isDelimiter(line) {
			return &Document{
				Open:        open,
				Close:       line,
				Block:       &Block{lines: lines, eol: eol},
				Body:        next,
				closedAtEOF: !hasBreak,
			}, nil
		}
		lines = append(lines, line)
		rest = next
	}
	return nil, ErrNoFrontmatter
}

// String reassembles the document. For a document returned by Split and
// not modified since, the result equals the original input.
func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(d.Open)
	b.WriteByte('\n')
	for _, line := range d.Block.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(d.Close)
	if !d.closedAtEOF {
		b.WriteByte('\n')
	}
	b.WriteString(d.Body)
	return b.String()
}

// Bytes is String as a byte slice.
func (d *Document) Bytes() []byte {
	return []byte(d.String())
}

// cutLine splits s at the first "\n". ok reports whether a line break was
// found; without one the whole of s is the line.
func cutLine(s string) (line, rest string, ok bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}
