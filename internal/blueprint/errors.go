// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bartekus/blueprints/internal/frontmatter"
)

var (
	// ErrEmptyPlatforms is returned when the platforms section exists but
	// carries nothing.
	ErrEmptyPlatforms = errors.New("empty platforms section")

	// ErrInlinePlatforms is returned when platforms are written as an inline
	// value, where nested entries cannot be appended without rewriting the
	// key line.
	ErrInlinePlatforms = errors.New("platforms section has an inline value")
)

// MissingFieldsError lists every required key a blueprint lacks.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InvalidYAMLError reports metadata that does not decode as YAML.
type InvalidYAMLError struct {
	Err error
}

func (e *InvalidYAMLError) Error() string { return "invalid YAML: " + e.Err.Error() }

func (e *InvalidYAMLError) Unwrap() error { return e.Err }

// Reason turns a document-level error into the sentence shown in reports,
// e.g. "Missing required fields: id, title". Other errors are returned
// unchanged.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var missing *MissingFieldsError
	var invalid *InvalidYAMLError
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter),
		errors.Is(err, ErrEmptyPlatforms),
		errors.Is(err, ErrInlinePlatforms),
		errors.As(err, &missing),
		errors.As(err, &invalid):
		return capitalize(err.Error())
	}
	return err.Error()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
