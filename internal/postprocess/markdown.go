package postprocess

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gendoc/internal/docfile"
)

const (
	// GeneratedMarker is a link reference definition, so it never renders.
	GeneratedMarker = "[//]: # (Auto generated file, don't modify this file.)"

	DefaultTabWidth    = 4
	DefaultTocMaxLevel = 4
)

// TocRunner updates the table of contents of a markdown file in place.
type TocRunner interface {
	Run(ctx context.Context, path string, minHeadings, maxLevel int) error
}

// Processor rewrites generated markdown files.
type Processor struct {
	tabWidth    int
	tocMaxLevel int
	toc         TocRunner
}

// NewProcessor creates a post-processor. toc may be nil to disable tables of contents.
func NewProcessor(tabWidth, tocMaxLevel int, toc TocRunner) *Processor {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if tocMaxLevel <= 0 {
		tocMaxLevel = DefaultTocMaxLevel
	}
	return &Processor{tabWidth: tabWidth, tocMaxLevel: tocMaxLevel, toc: toc}
}

// Process runs every post-processing step for doc. Targets that are not
// markdown are left alone.
func (p *Processor) Process(ctx context.Context, doc *docfile.Document) error {
	if !doc.IsMarkdownTarget() {
		return nil
	}

	if err := p.rewrite(doc.TargetPath); err != nil {
		return err
	}

	if doc.GenerateToc && p.toc != nil {
		// Best effort: a failing TOC tool leaves the file without a table.
		if err := p.toc.Run(ctx, filepath.ToSlash(doc.TargetPath), doc.TocMinHeadings, p.tocMaxLevel); err != nil {
			log.Printf("⚠️  Table of contents not updated for %s: %v", doc.TargetPath, err)
		}
	}

	if doc.PostAction != nil {
		if err := doc.PostAction.Apply(doc.TargetPath); err != nil {
			return fmt.Errorf("post action %s failed: %w", doc.PostAction.Name(), err)
		}
	}

	return nil
}

func (p *Processor) rewrite(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := ReadLines(string(content))
	for i, line := range lines {
		lines[i] = ExpandLeadingTabs(line, p.tabWidth)
	}
	lines = AddGeneratedMarker(lines)

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadLines splits content into lines without terminators.
func ReadLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ExpandLeadingTabs replaces each tab in the leading whitespace of line with
// width spaces. Tabs after the first other character are kept.
func ExpandLeadingTabs(line string, width int) string {
	end := len(line) - len(strings.TrimLeft(line, " \t"))
	if !strings.Contains(line[:end], "\t") {
		return line
	}
	return strings.ReplaceAll(line[:end], "\t", strings.Repeat(" ", width)) + line[end:]
}

// AddGeneratedMarker prepends the marker and a blank line unless it is
// already the first line.
func AddGeneratedMarker(lines []string) []string {
	if len(lines) > 0 && lines[0] == GeneratedMarker {
		return lines
	}
	return append([]string{GeneratedMarker, ""}, lines...)
}
