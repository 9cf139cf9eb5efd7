// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	"fmt"

	"github.com/bartekus/blueprints/internal/frontmatter"
)

// Step selects which augmentations a Patcher applies.
type Step uint8

const (
	// StepMetadata appends missing schemaVersion, license, repositoryUrl
	// and category tags.
	StepMetadata Step = 1 << iota
	// StepPlatforms appends missing platform blocks to the platforms
	// section.
	StepPlatforms

	StepAll = StepMetadata | StepPlatforms
)

const (
	defaultChildIndent = 2
	defaultNestedStep  = 2
)

// PatchResult records the augmentations applied to one blueprint. An empty
// Changes list on success means the blueprint was already compliant and
// nothing was written.
type PatchResult struct {
	Success bool
	Changes []string
	Err     error
}

// Reason is the human-readable failure, or "" on success.
func (r PatchResult) Reason() string { return Reason(r.Err) }

// Writer persists a rewritten document.
type Writer interface {
	Write(path string, data []byte) error
}

// Patcher appends missing metadata to blueprints. It only ever adds lines;
// existing lines keep their bytes and relative order.
type Patcher struct {
	tables *Tables
	steps  Step
	out    Writer
	// DryRun computes changes without writing them.
	DryRun bool
}

// NewPatcher returns a patcher applying steps from t and writing through out.
func NewPatcher(t *Tables, steps Step, out Writer) *Patcher {
	return &Patcher{tables: t, steps: steps, out: out}
}

// Patch augments the document at path whose current bytes are content.
// The document is written only when at least one change applies, and
// either completely or not at all.
func (p *Patcher) Patch(path string, content []byte, c Category) PatchResult {
	doc, err := frontmatter.Split(string(content))
	if err != nil {
		return PatchResult{Err: err}
	}

	changes, err := p.Apply(doc.Block, c)
	if err != nil {
		return PatchResult{Err: err}
	}
	if len(changes) == 0 || p.DryRun {
		return PatchResult{Success: true, Changes: changes}
	}

	if err := p.out.Write(path, doc.Bytes()); err != nil {
		return PatchResult{Err: fmt.Errorf("writing %s: %w", path, err)}
	}
	return PatchResult{Success: true, Changes: changes}
}

// Apply appends the missing pieces for category c to b and describes each
// addition. On error b may hold a partial patch and must be discarded.
func (p *Patcher) Apply(b *frontmatter.Block, c Category) ([]string, error) {
	changes := []string{}
	if p.steps&StepMetadata != 0 {
		changes = append(changes, p.enrich(b, c)...)
	}
	if p.steps&StepPlatforms != 0 {
		added, err := p.addPlatforms(b, c)
		if err != nil {
			return nil, err
		}
		changes = append(changes, added...)
	}
	return changes, nil
}

func (p *Patcher) enrich(b *frontmatter.Block, c Category) []string {
	d := p.tables.Defaults()
	fields := []struct {
		key, value string
	}{
		{"schemaVersion", d.SchemaVersion},
		{"license", d.License},
		{"repositoryUrl", d.RepositoryURL},
	}

	var changes []string
	for _, f := range fields {
		if f.value == "" || b.Has(f.key) {
			continue
		}
		b.Append(f.key + ": " + String(f.value).Render())
		changes = append(changes, "added "+f.key)
	}

	if tags := p.tables.Tags(c); len(tags) > 0 && !b.Has("tags") {
		b.Append("tags: " + List(tags...).Render())
		changes = append(changes, fmt.Sprintf("added %d category-based tags", len(tags)))
	}
	return changes
}

func (p *Patcher) addPlatforms(b *frontmatter.Block, c Category) ([]string, error) {
	table := p.tables.Platforms(c)
	if len(table) == 0 {
		return nil, nil
	}

	var changes []string
	sec, ok := b.Section(platformsKey)
	if !ok {
		b.Append(platformsKey + ":")
		changes = append(changes, "added platforms section")
		sec, _ = b.Section(platformsKey)
	} else if sec.Inline != "" {
		return nil, ErrInlinePlatforms
	}

	indent := sec.ChildIndent()
	if indent <= 0 {
		indent = defaultChildIndent
	}
	step := sec.NestedStep()
	if step <= 0 {
		step = defaultNestedStep
	}

	present := make(map[string]bool)
	for _, name := range sec.ChildKeys() {
		present[name] = true
	}

	var lines []string
	for _, platform := range table {
		if present[platform.Name] {
			continue
		}
		present[platform.Name] = true
		lines = append(lines, platform.Lines(indent, step)...)
		changes = append(changes, "added platform "+platform.Name)
	}
	if len(lines) > 0 {
		b.Insert(sec.End, lines...)
	}
	return changes, nil
}
