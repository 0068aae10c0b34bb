package docfile

import "strings"

// SourceType tells the converter how a documentation source is turned into markdown.
type SourceType string

const (
	SourceCode SourceType = "source-code"
	Markdown   SourceType = "markdown"
	Unknown    SourceType = "unknown"
)

var extensionTypes = map[string]SourceType{
	"cpp":      SourceCode,
	"cc":       SourceCode,
	"cxx":      SourceCode,
	"c":        SourceCode,
	"h":        SourceCode,
	"hpp":      SourceCode,
	"hxx":      SourceCode,
	"go":       SourceCode,
	"md":       Markdown,
	"markdown": Markdown,
}

// DetectType maps a file extension (without the dot) to its SourceType.
func DetectType(ext string) SourceType {
	if t, ok := extensionTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return Unknown
}

// SourceCodeExtensions lists the extensions handled by the comment extractor.
func SourceCodeExtensions() []string {
	var exts []string
	for ext, t := range extensionTypes {
		if t == SourceCode {
			exts = append(exts, ext)
		}
	}
	return exts
}

// Document is the per-file configuration computed for one documentation source.
// It lives for a single processing pass.
type Document struct {
	Name           string
	Ext            string
	Type           SourceType
	SourcePath     string
	TargetPath     string
	GenerateToc    bool
	TocMinHeadings int
	PostAction     PostAction // nil when nothing runs after post-processing
}

// IsMarkdownTarget reports whether the target gets markdown post-processing.
func (d *Document) IsMarkdownTarget() bool {
	return strings.HasSuffix(d.TargetPath, ".md")
}

// Override holds the per-document settings from the configuration file.
// Zero values (empty Target, nil pointers, nil PostAction) keep the defaults.
type Override struct {
	Target         string
	GenerateToc    *bool
	TocMinHeadings *int
	PostAction     PostAction
}
