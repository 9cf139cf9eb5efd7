// SPDX-License-Identifier: AGPL-3.0-or-later

package frontmatter

import (
	"regexp"
	"strings"
)

// keyPattern matches "<key>:" at the start of an unindented string.
var keyPattern = regexp.MustCompile(`^([A-Za-z0-9_][A-Za-z0-9_.-]*)[ \t]*:`)

// Block is the text between the delimiters, held as lines without their
// "\n" terminators. Lines from a CRLF document keep their "\r".
type Block struct {
	lines []string
	eol   string
}

// NewBlock builds a block from raw metadata text.
func NewBlock(text string) *Block {
	if text == "" {
		return &Block{}
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	b := &Block{lines: lines}
	if strings.HasSuffix(lines[0], "\r") {
		b.eol = "\r"
	}
	return b
}

// Len returns the number of lines in the block.
func (b *Block) Len() int { return len(b.lines) }

// Lines returns a copy of the block's lines with line endings removed.
func (b *Block) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = clean(l)
	}
	return out
}

// Text returns the block as "\n"-separated text.
func (b *Block) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Has reports whether key appears as a top-level key. Indented lines are
// nested content and never count.
func (b *Block) Has(key string) bool {
	_, ok := b.find(key)
	return ok
}

// Keys lists the top-level keys in document order.
func (b *Block) Keys() []string {
	var keys []string
	for _, l := range b.lines {
		if k, _, ok := topLevelKey(l); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Value returns the inline value of a top-level key with surrounding
// quotes removed. ok is false when the key is absent.
func (b *Block) Value(key string) (string, bool) {
	i, ok := b.find(key)
	if !ok {
		return "", false
	}
	_, rest, _ := topLevelKey(b.lines[i])
	return unquote(inlineValue(rest)), true
}

// Scalars maps every top-level key that carries an inline value to that
// value. Keys that introduce a nested section are omitted.
func (b *Block) Scalars() map[string]string {
	out := make(map[string]string)
	for _, l := range b.lines {
		k, rest, ok := topLevelKey(l)
		if !ok {
			continue
		}
		if _, seen := out[k]; seen {
			continue
		}
		if v := inlineValue(rest); v != "" {
			out[k] = unquote(v)
		}
	}
	return out
}

// Section returns the nested section introduced by a top-level key.
// Blank lines and column-0 comments do not end the section; trailing ones
// are left outside End.
func (b *Block) Section(key string) (Section, bool) {
	i, ok := b.find(key)
	if !ok {
		return Section{}, false
	}
	_, rest, _ := topLevelKey(b.lines[i])

	end := i + 1
	for j := i + 1; j < len(b.lines); j++ {
		l := clean(b.lines[j])
		if isBlank(l) || (indentOf(l) == 0 && isComment(l)) {
			continue
		}
		if indentOf(l) == 0 && !isSequenceItem(l) {
			break
		}
		end = j + 1
	}

	lines := make([]string, 0, end-i-1)
	for _, l := range b.lines[i+1 : end] {
		lines = append(lines, clean(l))
	}
	return Section{
		Key:    key,
		Line:   i,
		Start:  i + 1,
		End:    end,
		Inline: inlineValue(rest),
		lines:  lines,
	}, true
}

// Append adds lines at the end of the block.
func (b *Block) Append(lines ...string) {
	b.Insert(len(b.lines), lines...)
}

// Insert adds lines before index at. Existing lines keep their content
// and relative order.
func (b *Block) Insert(at int, lines ...string) {
	if at < 0 || at > len(b.lines) {
		at = len(b.lines)
	}
	added := make([]string, len(lines))
	for i, l := range lines {
		added[i] = l + b.eol
	}
	out := make([]string, 0, len(b.lines)+len(added))
	out = append(out, b.lines[:at]...)
	out = append(out, added...)
	out = append(out, b.lines[at:]...)
	b.lines = out
}

func (b *Block) find(key string) (int, bool) {
	for i, l := range b.lines {
		if k, _, ok := topLevelKey(l); ok && k == key {
			return i, true
		}
	}
	return -1, false
}

// Section is the run of lines nested under a top-level key: every line up
// to the next unindented, non-blank line, minus trailing blank lines.
type Section struct {
	Key string
	// Line is the index of the key line in the block.
	Line int
	// Start and End bound the nested lines as [Start, End) block indexes.
	// Start == End when nothing is nested under the key.
	Start, End int
	// Inline is the value written after the colon on the key line, without
	// any trailing comment.
	Inline string

	lines []string
}

// Lines returns the nested lines.
func (s Section) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Text returns the nested lines as "\n"-separated text.
func (s Section) Text() string {
	return strings.Join(s.lines, "\n")
}

// Empty reports whether the section carries no content: only whitespace
// under the key and no inline value beyond an empty collection or null.
func (s Section) Empty() bool {
	for _, l := range s.lines {
		if !isBlank(l) {
			return false
		}
	}
	switch s.Inline {
	case "", "{}", "[]", "~", "null":
		return true
	}
	return false
}

// ChildIndent is the indentation of the section's direct children, or -1
// when nothing but blanks and comments is nested.
func (s Section) ChildIndent() int {
	indent := -1
	for _, l := range s.lines {
		if isBlank(l) || isComment(l) {
			continue
		}
		if n := indentOf(l); indent < 0 || n < indent {
			indent = n
		}
	}
	return indent
}

// ChildKeys lists the keys declared directly under the section.
func (s Section) ChildKeys() []string {
	indent := s.ChildIndent()
	if indent < 0 {
		return nil
	}
	var keys []string
	for _, l := range s.lines {
		if isBlank(l) || indentOf(l) != indent {
			continue
		}
		if k, _, ok := keyOf(l); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// HasChild reports whether name is declared directly under the section.
func (s Section) HasChild(name string) bool {
	for _, k := range s.ChildKeys() {
		if k == name {
			return true
		}
	}
	return false
}

// NestedStep is the extra indentation used for lines nested one level
// below a child key, or 0 when the section has no such lines.
func (s Section) NestedStep() int {
	indent := s.ChildIndent()
	if indent < 0 {
		return 0
	}
	for i, l := range s.lines {
		if isBlank(l) || indentOf(l) != indent {
			continue
		}
		if _, _, ok := keyOf(l); !ok {
			continue
		}
		for _, next := range s.lines[i+1:] {
			if isBlank(next) || isComment(next) {
				continue
			}
			if n := indentOf(next); n > indent {
				return n - indent
			}
			break
		}
	}
	return 0
}

func clean(line string) string {
	return strings.TrimSuffix(line, "\r")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// isSequenceItem matches "- item" lines, which YAML allows at the same
// indentation as the key that owns the sequence.
func isSequenceItem(line string) bool {
	t := strings.TrimLeft(line, " \t")
	return t == "-" || strings.HasPrefix(t, "- ")
}

// keyOf parses "<key>:" after any indentation and returns the key and the
// text following the colon.
func keyOf(line string) (key, rest string, ok bool) {
	t := strings.TrimLeft(clean(line), " \t")
	m := keyPattern.FindStringSubmatchIndex(t)
	if m == nil {
		return "", "", false
	}
	return t[m[2]:m[3]], t[m[1]:], true
}

func topLevelKey(line string) (key, rest string, ok bool) {
	if indentOf(line) != 0 {
		return "", "", false
	}
	return keyOf(line)
}

// inlineValue trims the text after a key's colon and drops a trailing
// comment from unquoted values.
func inlineValue(rest string) string {
	v := strings.TrimSpace(rest)
	if strings.HasPrefix(v, "#") {
		return ""
	}
	if v == "" {
		return v
	}
	if q := v[0]; q == '"' || q == '\'' {
		if end := closingQuote(v, q); end > 0 {
			return v[:end+1]
		}
		return v
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

// closingQuote returns the index of the quote that closes v[0], honouring
// backslash escapes inside double quotes, or -1.
func closingQuote(v string, q byte) int {
	for i := 1; i < len(v); i++ {
		switch {
		case q == '"' && v[i] == '\\':
			i++
		case v[i] == q:
			return i
		}
	}
	return -1
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
