package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gendoc/internal/docfile"
	"gendoc/internal/extractor"
)

// ErrUnsupportedType is returned for documents no converter handles.
var ErrUnsupportedType = errors.New("unsupported document type")

// Converter writes the markdown for a document to its target path.
type Converter struct {
	extractor *extractor.Extractor
}

func NewConverter(ext *extractor.Extractor) *Converter {
	return &Converter{extractor: ext}
}

// Convert dispatches on the document type. Nothing is written for an
// unsupported type.
func (c *Converter) Convert(ctx context.Context, doc *docfile.Document) error {
	switch doc.Type {
	case docfile.SourceCode:
		return c.extractor.ExtractToFile(ctx, doc.SourcePath, doc.TargetPath)
	case docfile.Markdown:
		return copyFile(doc.SourcePath, doc.TargetPath)
	default:
		return fmt.Errorf("%s: %w", doc.Ext, ErrUnsupportedType)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
