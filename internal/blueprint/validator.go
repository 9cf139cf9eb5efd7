// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"gopkg.in/yaml.v3"

	"github.com/bartekus/blueprints/internal/frontmatter"
)

// platformsKey is the nested section holding per-platform capabilities.
const platformsKey = "platforms"

// ValidationResult is the verdict for one blueprint.
type ValidationResult struct {
	Valid bool
	// Err is set when Valid is false.
	Err error
	// Metadata holds the top-level scalar values that were found.
	Metadata map[string]string
	// HasExtendedPlatforms is set when any extended platform is declared.
	HasExtendedPlatforms bool
	// PlatformCount is the number of platforms declared under platforms.
	PlatformCount int
}

// Reason is the human-readable failure, or "" for a valid blueprint.
func (r ValidationResult) Reason() string { return Reason(r.Err) }

// Validator checks blueprint metadata for required keys and a populated
// platforms section. Only presence is checked, never value types.
type Validator struct {
	tables *Tables
	// Strict additionally requires the metadata block to decode as YAML.
	Strict bool
}

// NewValidator returns a validator driven by t.
func NewValidator(t *Tables) *Validator {
	return &Validator{tables: t}
}

// Validate checks a whole document.
func (v *Validator) Validate(content []byte) ValidationResult {
	doc, err := frontmatter.Split(string(content))
	if err != nil {
		return ValidationResult{Err: err}
	}
	return v.ValidateBlock(doc.Block)
}

// ValidateBlock checks an already located metadata block.
func (v *Validator) ValidateBlock(b *frontmatter.Block) ValidationResult {
	res := ValidationResult{Metadata: b.Scalars()}

	var missing []string
	for _, field := range v.tables.RequiredFields() {
		if !b.Has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		res.Err = &MissingFieldsError{Fields: missing}
		return res
	}

	sec, ok := b.Section(platformsKey)
	if !ok || sec.Empty() {
		res.Err = ErrEmptyPlatforms
		return res
	}

	if v.Strict {
		var decoded map[string]interface{}
		if err := yaml.Unmarshal([]byte(b.Text()), &decoded); err != nil {
			res.Err = &InvalidYAMLError{Err: err}
			return res
		}
	}

	res.Valid = true
	res.PlatformCount = len(sec.ChildKeys())
	for _, name := range v.tables.ExtendedPlatforms() {
		if sec.HasChild(name) {
			res.HasExtendedPlatforms = true
			break
		}
	}
	return res
}
