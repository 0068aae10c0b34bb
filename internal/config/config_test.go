package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gendoc/internal/docfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
source_root: ../tests/docsrc
doc_root: ../doc
tab_width: 2
toc:
  enabled: true
  min_headings: 4
  command: ["python", "markdown-toc.py"]
documents:
  readme:
    target: ../readme.md
    generate_toc: false
  document_readme:
    target: ../doc/readme.md
    post_action:
      kind: replace_text
      old: "doc/"
      new: ""
`

func writeConfig(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tools")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "gendoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path, dir
}

func TestLoadConfig(t *testing.T) {
	path, dir := writeConfig(t, sampleConfig)
	root := filepath.Dir(dir)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "tests", "docsrc"), cfg.SourceRoot)
	assert.Equal(t, filepath.Join(root, "doc"), cfg.DocRoot)
	assert.Equal(t, filepath.Join(dir, ".gendoc.db"), cfg.Database)
	assert.Equal(t, 2, cfg.TabWidth)
	assert.False(t, cfg.Force)
	assert.Equal(t, "doc_*.*", cfg.Discovery.Pattern)
	assert.Equal(t, 4, cfg.Toc.MinHeadings)
	assert.Equal(t, 4, cfg.Toc.MaxLevel)
	assert.Equal(t, []string{"python", "markdown-toc.py"}, cfg.Toc.Command)

	require.Contains(t, cfg.Documents, "readme")
	assert.Equal(t, filepath.Join(root, "readme.md"), cfg.Documents["readme"].Target)
}

func TestConfig_Overrides(t *testing.T) {
	path, dir := writeConfig(t, sampleConfig)
	root := filepath.Dir(dir)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	overrides, err := cfg.Overrides()
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	readme := overrides["readme"]
	require.NotNil(t, readme.GenerateToc)
	assert.False(t, *readme.GenerateToc)
	assert.Nil(t, readme.TocMinHeadings)
	assert.Nil(t, readme.PostAction)

	docReadme := overrides["document_readme"]
	assert.Equal(t, filepath.Join(root, "doc", "readme.md"), docReadme.Target)
	assert.Equal(t, docfile.ReplaceText{Old: "doc/", New: ""}, docReadme.PostAction)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadConfig_UnknownPostAction(t *testing.T) {
	path, _ := writeConfig(t, `
documents:
  readme:
    post_action:
      kind: shell
`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, `unknown post action kind "shell"`)
}

func TestLoadConfig_InvalidTabWidth(t *testing.T) {
	path, _ := writeConfig(t, "tab_width: -1\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "tab_width")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path, _ := writeConfig(t, sampleConfig)
	t.Setenv("GENDOC_SOURCE_ROOT", "/srv/src")
	t.Setenv("GENDOC_DOC_ROOT", "/srv/doc")
	t.Setenv("GENDOC_FORCE", "true")
	t.Setenv("GENDOC_DB", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/src", cfg.SourceRoot)
	assert.Equal(t, "/srv/doc", cfg.DocRoot)
	assert.True(t, cfg.Force)
	assert.Empty(t, cfg.Database)
}

func TestLoadConfig_InvalidForceEnv(t *testing.T) {
	path, _ := writeConfig(t, sampleConfig)
	t.Setenv("GENDOC_FORCE", "sometimes")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "GENDOC_FORCE")
}

func TestLoadDefault(t *testing.T) {
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "docsrc", cfg.SourceRoot)
	assert.Equal(t, "doc", cfg.DocRoot)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.True(t, cfg.Toc.Enabled)
	assert.Equal(t, docfile.DefaultTocMinHeadings, cfg.Toc.MinHeadings)
	assert.Empty(t, cfg.Toc.Command)
}

func TestPostAction_Build(t *testing.T) {
	action, err := PostAction{Kind: "replace_text", Old: "a", New: "b"}.Build()
	require.NoError(t, err)
	assert.Equal(t, docfile.ReplaceText{Old: "a", New: "b"}, action)

	_, err = PostAction{Kind: "replace_text"}.Build()
	assert.Error(t, err)
}

func TestLoadConfig_SchemaRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative min headings", "toc:\n  min_headings: -1\n"},
		{"max level beyond h6", "toc:\n  max_level: 9\n"},
		{"negative document threshold", "documents:\n  readme:\n    toc_min_headings: -2\n"},
		{"empty toc command entry", "toc:\n  command: [\"\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _ := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			assert.ErrorContains(t, err, "config schema validation failed")
		})
	}
}

func TestConfig_ValidateSchemaAcceptsDefaults(t *testing.T) {
	cfg := Default()
	cfg.Documents["readme"] = Document{PostAction: &PostAction{Kind: "replace_text", Old: "doc/"}}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_TocWanted(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.TocWanted())

	cfg.Toc.Enabled = false
	assert.False(t, cfg.TocWanted())

	off, on := false, true
	cfg.Documents["api"] = Document{GenerateToc: &off}
	assert.False(t, cfg.TocWanted())

	cfg.Documents["readme"] = Document{GenerateToc: &on}
	assert.True(t, cfg.TocWanted())
}
