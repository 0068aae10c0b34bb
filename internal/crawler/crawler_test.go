package crawler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		path := filepath.Join(root, r)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestCrawler_Collect(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"doc_readme.md",
		"doc_parser.cpp",
		"helper.cpp",
		"sub/deeper/doc_dumper.cpp",
		"sub/doc_noext",
		"node_modules/doc_vendored.md",
		".git/doc_hidden.md",
	)

	c, err := NewCrawler("", nil)
	require.NoError(t, err)

	files, err := c.Collect(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "doc_parser.cpp"),
		filepath.Join(root, "doc_readme.md"),
		filepath.Join(root, "sub", "deeper", "doc_dumper.cpp"),
	}, files)
}

func TestCrawler_CustomPattern(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "doc_a.md", "doc_b.cpp")

	c, err := NewCrawler("doc_*.md", []string{})
	require.NoError(t, err)

	files, err := c.Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "doc_a.md")}, files)
}

func TestCrawler_InvalidPattern(t *testing.T) {
	_, err := NewCrawler("doc_[", nil)
	assert.Error(t, err)
}

func TestCrawler_CallbackErrorStopsScan(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "doc_a.md", "doc_b.md")

	c, err := NewCrawler("", nil)
	require.NoError(t, err)

	stop := errors.New("stop")
	calls := 0
	err = c.ScanProject(root, func(string) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCrawler_MissingRoot(t *testing.T) {
	c, err := NewCrawler("", nil)
	require.NoError(t, err)

	_, err = c.Collect(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
