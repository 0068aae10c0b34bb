package toc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	BeginMarker = "<!--begintoc-->"
	EndMarker   = "<!--endtoc-->"

	DefaultMaxLevel    = 4
	DefaultMinHeadings = 6

	// Level 1 is the document title and is never listed.
	minListedLevel = 2
)

// Options controls which headings are listed and when a table is generated.
type Options struct {
	MaxLevel    int
	MinHeadings int
}

func (o Options) withDefaults() Options {
	if o.MaxLevel <= 0 {
		o.MaxLevel = DefaultMaxLevel
	}
	if o.MinHeadings < 0 {
		o.MinHeadings = DefaultMinHeadings
	}
	return o
}

// Heading is a markdown heading that goes into the table of contents.
type Heading struct {
	Level  int
	Text   string
	ID     string
	Offset int // byte offset of the heading's first line
}

// Headings returns the headings of level 2 up to maxLevel in document order.
func Headings(src []byte, maxLevel int) []Heading {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	doc := md.Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < minListedLevel || h.Level > maxLevel || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}

		headings = append(headings, Heading{
			Level:  h.Level,
			Text:   strings.TrimSpace(string(h.Text(src))),
			ID:     id,
			Offset: lineStart(src, h.Lines().At(0).Start),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func lineStart(src []byte, pos int) int {
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// RenderBlock renders the delimited table of contents for headings.
func RenderBlock(headings []Heading) string {
	minLevel := 0
	for _, h := range headings {
		if minLevel == 0 || h.Level < minLevel {
			minLevel = h.Level
		}
	}

	var sb strings.Builder
	sb.WriteString(BeginMarker + "\n")
	for _, h := range headings {
		sb.WriteString(strings.Repeat("  ", h.Level-minLevel))
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", h.Text, h.ID))
	}
	sb.WriteString(EndMarker + "\n")
	return sb.String()
}

// Update inserts or refreshes the table of contents in src. Below
// MinHeadings an existing table is removed and a missing one is not added.
func Update(src []byte, opts Options) ([]byte, bool) {
	opts = opts.withDefaults()

	headings := Headings(src, opts.MaxLevel)
	begin, end, found := findBlock(src)

	if len(headings) == 0 || len(headings) < opts.MinHeadings {
		if !found {
			return src, false
		}
		// Drop the blank line that separated the block from the text after it.
		if bytes.HasSuffix(src[:begin], []byte("\n\n")) && end < len(src) && src[end] == '\n' {
			end++
		}
		var out bytes.Buffer
		out.Write(src[:begin])
		out.Write(src[end:])
		return out.Bytes(), true
	}
	block := RenderBlock(headings)

	if found {
		var out bytes.Buffer
		out.Write(src[:begin])
		out.WriteString(block)
		out.Write(src[end:])
		return out.Bytes(), !bytes.Equal(out.Bytes(), src)
	}

	at := headings[0].Offset
	var out bytes.Buffer
	out.Write(src[:at])
	if at > 0 && !bytes.HasSuffix(src[:at], []byte("\n\n")) {
		out.WriteString("\n")
	}
	out.WriteString(block)
	out.WriteString("\n")
	out.Write(src[at:])
	return out.Bytes(), true
}

// findBlock locates an existing table of contents. end includes the
// newline after the end marker.
func findBlock(src []byte) (begin, end int, ok bool) {
	begin = bytes.Index(src, []byte(BeginMarker))
	if begin < 0 {
		return 0, 0, false
	}
	rel := bytes.Index(src[begin:], []byte(EndMarker))
	if rel < 0 {
		return 0, 0, false
	}
	end = begin + rel + len(EndMarker)
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return begin, end, true
}

// UpdateFile rewrites path in place when its table of contents changes.
func UpdateFile(path string, opts Options) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, changed := Update(src, opts)
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
