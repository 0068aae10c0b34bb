package docfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultTocMinHeadings = 6
	targetExt             = ".md"
)

var (
	// ErrUnmatchedName is returned for a file that does not follow doc_<name>.<ext>.
	ErrUnmatchedName = errors.New("file name does not match doc_<name>.<ext>")
	// ErrOutsideRoot is returned for a file that is not below the source root.
	ErrOutsideRoot = errors.New("file is outside the source root")
)

var docNamePattern = regexp.MustCompile(`doc_([^\\/]+)\.(\w+)$`)

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	SourceRoot     string
	DocRoot        string
	GenerateToc    bool
	TocMinHeadings int
	Overrides      map[string]Override
}

// Resolver turns a discovered source path into a Document.
type Resolver struct {
	sourceRoot     string
	docRoot        string
	generateToc    bool
	tocMinHeadings int
	overrides      map[string]Override
}

// NewResolver creates a resolver. Both roots are made absolute.
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	sourceRoot, err := filepath.Abs(opts.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root: %w", err)
	}
	docRoot, err := filepath.Abs(opts.DocRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doc root: %w", err)
	}

	minHeadings := opts.TocMinHeadings
	if minHeadings <= 0 {
		minHeadings = DefaultTocMinHeadings
	}

	overrides := opts.Overrides
	if overrides == nil {
		overrides = map[string]Override{}
	}

	return &Resolver{
		sourceRoot:     sourceRoot,
		docRoot:        docRoot,
		generateToc:    opts.GenerateToc,
		tocMinHeadings: minHeadings,
		overrides:      overrides,
	}, nil
}

func (r *Resolver) SourceRoot() string { return r.sourceRoot }

func (r *Resolver) DocRoot() string { return r.docRoot }

// ParseName extracts the logical document name and extension from a path.
func ParseName(path string) (name, ext string, ok bool) {
	m := docNamePattern.FindStringSubmatch(path)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Resolve computes the Document for a source file and makes sure the target
// directory exists.
func (r *Resolver) Resolve(sourcePath string) (*Document, error) {
	name, ext, ok := ParseName(sourcePath)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sourcePath, ErrUnmatchedName)
	}

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(r.sourceRoot, absSource)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%s: %w", sourcePath, ErrOutsideRoot)
	}
	relDir := filepath.Dir(rel)

	doc := &Document{
		Name:           name,
		Ext:            ext,
		Type:           DetectType(ext),
		SourcePath:     absSource,
		TargetPath:     filepath.Join(r.docRoot, relDir, name+targetExt),
		GenerateToc:    r.generateToc,
		TocMinHeadings: r.tocMinHeadings,
	}

	if o, ok := r.overrides[name]; ok {
		if o.Target != "" {
			doc.TargetPath = o.Target
		}
		if o.GenerateToc != nil {
			doc.GenerateToc = *o.GenerateToc
		}
		if o.TocMinHeadings != nil {
			doc.TocMinHeadings = *o.TocMinHeadings
		}
		if o.PostAction != nil {
			doc.PostAction = o.PostAction
		}
	}

	if err := os.MkdirAll(filepath.Dir(doc.TargetPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	return doc, nil
}
