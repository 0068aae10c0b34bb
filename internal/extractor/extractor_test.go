package extractor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gendoc/internal/docfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractMarkdown_Cpp(t *testing.T) {
	ext := NewExtractor()

	md, err := ext.ExtractMarkdown(context.Background(), filepath.Join("testdata", "doc_sample.cpp"))
	require.NoError(t, err)

	expected := "# Title\n" +
		"\n" +
		"Intro text.\n" +
		"\n" +
		"## Usage\n" +
		"\n" +
		"Include the header.\n" +
		"\n" +
		"```c++\n" +
		"#include \"lib.h\"\n" +
		"```\n" +
		"\n" +
		"Create a value.\n" +
		"\n" +
		"```c++\n" +
		"int a = 1;\n" +
		"// plain comment stays in code\n" +
		"int b = a + 1;\n" +
		"const char * s = \"//desc not a marker\";\n" +
		"```\n"
	assert.Equal(t, expected, md)
}

func TestExtractor_ExtractMarkdown_Go(t *testing.T) {
	ext := NewExtractor()

	md, err := ext.ExtractMarkdown(context.Background(), filepath.Join("testdata", "doc_example.go"))
	require.NoError(t, err)

	expected := "# Example\n" +
		"\n" +
		"Go sources use the same markers.\n" +
		"\n" +
		"```go\n" +
		"func Add(a, b int) int {\n" +
		"\treturn a + b\n" +
		"}\n" +
		"```\n"
	assert.Equal(t, expected, md)
}

func TestExtractor_ExtractToFile(t *testing.T) {
	ext := NewExtractor()
	target := filepath.Join(t.TempDir(), "sample.md")

	require.NoError(t, ext.ExtractToFile(context.Background(), filepath.Join("testdata", "doc_example.go"), target))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Example")
}

func TestExtractor_UnknownLanguage(t *testing.T) {
	ext := NewExtractor()

	_, err := ext.ExtractMarkdown(context.Background(), "doc_notes.xyz")
	assert.Error(t, err)
}

func TestExtractor_CoversEverySourceCodeExtension(t *testing.T) {
	ext := NewExtractor()
	for _, e := range docfile.SourceCodeExtensions() {
		_, ok := ext.LanguageFor(e)
		assert.True(t, ok, "no grammar registered for .%s", e)
	}
}

func TestExtractComments_SourceOrder(t *testing.T) {
	ext := NewExtractor()
	lang, ok := ext.LanguageFor(".go")
	require.True(t, ok)

	src := []byte("package p\n\n// first\nvar x = 1 // second\n/* third */\n")
	comments, err := ext.ExtractComments(context.Background(), src, lang)
	require.NoError(t, err)

	require.Len(t, comments, 3)
	assert.Equal(t, "// first", comments[0].Text)
	assert.Equal(t, "// second", comments[1].Text)
	assert.Equal(t, "/* third */", comments[2].Text)
	assert.Less(t, comments[0].StartByte, comments[1].StartByte)
}
