package crawler

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"
)

const DefaultPattern = "doc_*.*"

// DefaultIgnored lists directory names that are never descended into.
var DefaultIgnored = []string{".git", "node_modules", "vendor"}

// Crawler scans a directory tree for documentation sources.
type Crawler struct {
	pattern glob.Glob
	ignored []string
}

// NewCrawler creates a crawler matching base names against pattern.
func NewCrawler(pattern string, ignored []string) (*Crawler, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid discovery pattern %q: %w", pattern, err)
	}
	if ignored == nil {
		ignored = DefaultIgnored
	}
	return &Crawler{pattern: g, ignored: ignored}, nil
}

// Matches reports whether a file name is a documentation source.
func (c *Crawler) Matches(name string) bool {
	return c.pattern.Match(name)
}

// ScanProject walks root in lexical order and calls onFile for every
// matching file. An error from onFile stops the walk.
func (c *Crawler) ScanProject(root string, onFile func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !c.Matches(d.Name()) {
			return nil
		}
		return onFile(path)
	})
}

// Collect returns every matching file under root.
func (c *Crawler) Collect(root string) ([]string, error) {
	var files []string
	err := c.ScanProject(root, func(path string) error {
		files = append(files, path)
		return nil
	})
	return files, err
}
