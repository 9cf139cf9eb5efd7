package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func platformNames(table PlatformTable) []string {
	names := make([]string, len(table))
	for i, p := range table {
		names[i] = p.Name
	}
	return names
}

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	assert.Equal(t, Defaults{
		SchemaVersion: "2.1",
		License:       "MIT",
		RepositoryURL: "https://github.com/entro314-labs/VDK-Blueprints",
	}, tables.Defaults())
	assert.Equal(t, []string{"id", "title", "description", "version", "category", "platforms"}, tables.RequiredFields())
	assert.Equal(t, []string{"claude-desktop", "zed", "vscode", "generic-ai"}, tables.ExtendedPlatforms())
	assert.Equal(t, []string{"language", "syntax", "patterns"}, tables.Tags(Language))

	assert.Equal(t,
		[]string{"claude-desktop", "windsurf-next", "zed", "vscode", "webstorm", "generic-ai"},
		platformNames(tables.Platforms(Core)))
	assert.Equal(t,
		[]string{"claude-desktop", "zed", "vscode", "webstorm", "generic-ai"},
		platformNames(tables.Platforms(Technology)))

	vscode := tables.Platforms(Core)[3]
	assert.Equal(t, []Option{
		{Name: "compatible", Value: Bool(true)},
		{Name: "extension", Value: String("ai-context-schema")},
		{Name: "mcpIntegration", Value: Bool(true)},
		{Name: "commands", Value: List("aiContext.apply", "aiContext.validate")},
	}, vscode.Options)
}

func TestDefaultTables_Shared(t *testing.T) {
	a, err := DefaultTables()
	require.NoError(t, err)
	b, err := DefaultTables()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestTables_AccessorsReturnCopies(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	fields := tables.RequiredFields()
	fields[0] = "changed"
	tags := tables.Tags(Core)
	tags[0] = "changed"
	platforms := tables.Platforms(Core)
	platforms[0].Name = "changed"

	assert.Equal(t, "id", tables.RequiredFields()[0])
	assert.Equal(t, "behavior", tables.Tags(Core)[0])
	assert.Equal(t, "claude-desktop", tables.Platforms(Core)[0].Name)
}

func TestTables_PlatformsFallBackToCore(t *testing.T) {
	tables, err := ParseTables([]byte(`
requiredFields: [id]
platforms:
  core:
    zed:
      compatible: true
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zed"}, platformNames(tables.Platforms(Task)))
	assert.Nil(t, tables.Tags(Task))
}

func TestParseTables_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown category",
			doc:  "requiredFields: [id]\ntags:\n  stack: [a]\n",
			want: "tables do not match schema",
		},
		{
			name: "nested option value",
			doc:  "requiredFields: [id]\nplatforms:\n  core:\n    zed:\n      mode:\n        nested: true\n",
			want: "tables do not match schema",
		},
		{
			name: "required fields not a list",
			doc:  "requiredFields: id\n",
			want: "tables do not match schema",
		},
		{
			name: "required fields absent",
			doc:  "tags:\n  core: [a]\n",
			want: "tables do not match schema",
		},
		{
			name: "empty document",
			doc:  "",
			want: "tables document is empty",
		},
		{
			name: "not yaml",
			doc:  "platforms: [unclosed\n",
			want: "decoding tables",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTables([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  license: Apache-2.0
requiredFields: [id, platforms]
tags:
  task: [chore]
`), 0o600))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, "Apache-2.0", tables.Defaults().License)
	assert.Equal(t, []string{"id", "platforms"}, tables.RequiredFields())
	assert.Equal(t, []string{"chore"}, tables.Tags(Task))

	_, err = LoadTables(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading tables")
}

func TestTables_WithDefaults(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	custom := tables.WithDefaults(Defaults{License: "Apache-2.0"})
	assert.Equal(t, "Apache-2.0", custom.Defaults().License)
	assert.Equal(t, "2.1", custom.Defaults().SchemaVersion)
	assert.Equal(t, "MIT", tables.Defaults().License)
}

func TestTables_MarshalYAMLRoundTrip(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)

	out, err := yaml.Marshal(tables)
	require.NoError(t, err)

	again, err := ParseTables(out)
	require.NoError(t, err)

	assert.Equal(t, tables.Defaults(), again.Defaults())
	assert.Equal(t, tables.RequiredFields(), again.RequiredFields())
	for _, c := range Categories() {
		assert.Equal(t, tables.Platforms(c), again.Platforms(c), c.String())
		assert.Equal(t, tables.Tags(c), again.Tags(c), c.String())
	}
}
