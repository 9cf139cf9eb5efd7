// SPDX-License-Identifier: AGPL-3.0-or-later

package blueprint

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

//go:embed tables.schema.json
var tablesSchemaJSON []byte

// Defaults are the scalar values added by the metadata enrichment step.
type Defaults struct {
	SchemaVersion string `yaml:"schemaVersion"`
	License       string `yaml:"license"`
	RepositoryURL string `yaml:"repositoryUrl"`
}

// Tables is the static data that drives validation and patching. A Tables
// value is never modified after it is built; accessors return copies.
type Tables struct {
	defaults          Defaults
	requiredFields    []string
	extendedPlatforms []string
	tags              map[Category][]string
	platforms         map[Category]PlatformTable
}

type tablesFile struct {
	Defaults          Defaults            `yaml:"defaults"`
	RequiredFields    []string            `yaml:"requiredFields"`
	ExtendedPlatforms []string            `yaml:"extendedPlatforms"`
	Tags              map[string][]string `yaml:"tags"`
	Platforms         yaml.Node           `yaml:"platforms"`
}

var defaultTables = sync.OnceValues(func() (*Tables, error) {
	return ParseTables(defaultTablesYAML)
})

// DefaultTables returns the tables compiled into the binary.
func DefaultTables() (*Tables, error) {
	return defaultTables()
}

// LoadTables reads a tables file in the same format as the built-in one.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	t, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("tables %s: %w", path, err)
	}
	return t, nil
}

// ParseTables parses and schema-checks a YAML tables document.
func ParseTables(data []byte) (*Tables, error) {
	if err := checkTablesSchema(data); err != nil {
		return nil, err
	}

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}

	t := &Tables{
		defaults:          file.Defaults,
		requiredFields:    file.RequiredFields,
		extendedPlatforms: file.ExtendedPlatforms,
		tags:              make(map[Category][]string, len(file.Tags)),
		platforms:         make(map[Category]PlatformTable),
	}
	for name, tags := range file.Tags {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("tags: %w", err)
		}
		t.tags[c] = tags
	}

	if file.Platforms.Kind == yaml.MappingNode {
		n := &file.Platforms
		for i := 0; i+1 < len(n.Content); i += 2 {
			c, err := ParseCategory(n.Content[i].Value)
			if err != nil {
				return nil, fmt.Errorf("platforms: %w", err)
			}
			table, err := platformTableFromNode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("platforms.%s: %w", c, err)
			}
			t.platforms[c] = table
		}
	}
	return t, nil
}

func checkTablesSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding tables: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("tables document is empty")
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting tables to JSON: %w", err)
	}

	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(tablesSchemaJSON),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("checking tables schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("tables do not match schema: %s", strings.Join(msgs, "; "))
}

// WithDefaults returns a copy of t whose defaults are replaced by the
// non-empty fields of d.
func (t *Tables) WithDefaults(d Defaults) *Tables {
	cp := *t
	if d.SchemaVersion != "" {
		cp.defaults.SchemaVersion = d.SchemaVersion
	}
	if d.License != "" {
		cp.defaults.License = d.License
	}
	if d.RepositoryURL != "" {
		cp.defaults.RepositoryURL = d.RepositoryURL
	}
	return &cp
}

// Defaults returns the enrichment values.
func (t *Tables) Defaults() Defaults { return t.defaults }

// RequiredFields lists the keys every blueprint must declare.
func (t *Tables) RequiredFields() []string { return slices.Clone(t.requiredFields) }

// ExtendedPlatforms lists the platforms whose presence marks a blueprint as
// carrying the expanded platform set.
func (t *Tables) ExtendedPlatforms() []string { return slices.Clone(t.extendedPlatforms) }

// Tags returns the tag list for c, or nil when the category has none.
func (t *Tables) Tags(c Category) []string { return slices.Clone(t.tags[c]) }

// Platforms returns the platform defaults for c, falling back to the Core
// table when c has none registered.
func (t *Tables) Platforms(c Category) PlatformTable {
	table, ok := t.platforms[c]
	if !ok {
		table = t.platforms[Core]
	}
	return slices.Clone(table)
}

// MarshalYAML implements yaml.Marshaler.
func (t *Tables) MarshalYAML() (interface{}, error) {
	out := struct {
		Defaults          Defaults                 `yaml:"defaults"`
		RequiredFields    []string                 `yaml:"requiredFields,flow"`
		ExtendedPlatforms []string                 `yaml:"extendedPlatforms,flow"`
		Tags              map[string][]string      `yaml:"tags"`
		Platforms         map[string]PlatformTable `yaml:"platforms"`
	}{
		Defaults:          t.defaults,
		RequiredFields:    t.requiredFields,
		ExtendedPlatforms: t.extendedPlatforms,
		Tags:              make(map[string][]string, len(t.tags)),
		Platforms:         make(map[string]PlatformTable, len(t.platforms)),
	}
	for c, tags := range t.tags {
		out.Tags[c.String()] = tags
	}
	for c, table := range t.platforms {
		out.Platforms[c.String()] = table
	}
	return out, nil
}
