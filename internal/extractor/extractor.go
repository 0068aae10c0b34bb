package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor turns documentation comments embedded in source files into markdown.
type Extractor struct {
	languages map[string]Language
}

// NewExtractor creates an extractor that knows every supported language.
func NewExtractor() *Extractor {
	return &Extractor{languages: languagesByExt}
}

// LanguageFor returns the language registered for a file extension.
func (e *Extractor) LanguageFor(ext string) (Language, bool) {
	lang, ok := e.languages[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return lang, ok
}

// ExtractComments parses source and returns its comments in source order.
func (e *Extractor) ExtractComments(ctx context.Context, sourceCode []byte, lang Language) ([]Comment, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.Grammar())

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", lang.Name, err)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(commentQuery), lang.Grammar())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	var comments []Comment
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range m.Captures {
			comments = append(comments, Comment{
				Text:      capture.Node.Content(sourceCode),
				StartByte: capture.Node.StartByte(),
				EndByte:   capture.Node.EndByte(),
			})
		}
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].StartByte < comments[j].StartByte
	})
	return comments, nil
}

// ExtractMarkdown reads a source file and renders its documentation comments.
func (e *Extractor) ExtractMarkdown(ctx context.Context, sourcePath string) (string, error) {
	lang, ok := e.LanguageFor(filepath.Ext(sourcePath))
	if !ok {
		return "", fmt.Errorf("no comment grammar for %s", sourcePath)
	}

	sourceCode, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", sourcePath, err)
	}

	comments, err := e.ExtractComments(ctx, sourceCode, lang)
	if err != nil {
		return "", fmt.Errorf("failed to extract comments from %s: %w", sourcePath, err)
	}

	return Render(sourceCode, comments, lang.Fence), nil
}

// ExtractToFile renders sourcePath and writes the markdown to targetPath.
func (e *Extractor) ExtractToFile(ctx context.Context, sourcePath, targetPath string) error {
	content, err := e.ExtractMarkdown(ctx, sourcePath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", targetPath, err)
	}
	return nil
}
