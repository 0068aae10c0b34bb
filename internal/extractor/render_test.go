package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// commentsOf locates each marker verbatim in src, in order.
func commentsOf(src string, markers ...string) []Comment {
	var comments []Comment
	offset := 0
	for _, m := range markers {
		i := strings.Index(src[offset:], m) + offset
		comments = append(comments, Comment{Text: m, StartByte: uint32(i), EndByte: uint32(i + len(m))})
		offset = i + len(m)
	}
	return comments
}

func TestClassify(t *testing.T) {
	kind, lines := classify("//desc Hello world")
	assert.Equal(t, lineDesc, kind)
	assert.Equal(t, []string{"Hello world"}, lines)

	kind, lines = classify("//desc")
	assert.Equal(t, lineDesc, kind)
	assert.Equal(t, []string{""}, lines)

	kind, _ = classify("//description of something")
	assert.Equal(t, plainComment, kind)

	kind, _ = classify("  //code  ")
	assert.Equal(t, codeToggle, kind)

	kind, lines = classify("/*desc\n# Title\n\ntext\ndesc*/")
	assert.Equal(t, blockDesc, kind)
	assert.Equal(t, []string{"# Title", "", "text"}, lines)

	kind, lines = classify("/*desc one line */")
	assert.Equal(t, blockDesc, kind)
	assert.Equal(t, []string{"one line"}, lines)

	kind, _ = classify("/* regular */")
	assert.Equal(t, plainComment, kind)
}

func TestRender_NoMarkers(t *testing.T) {
	src := "int x; // counter\n"
	assert.Equal(t, "", Render([]byte(src), commentsOf(src, "// counter"), "c++"))
}

func TestRender_UnterminatedCodeRunsToEOF(t *testing.T) {
	src := "//code\nint a;\nint b;\n"
	md := Render([]byte(src), commentsOf(src, "//code"), "c++")
	assert.Equal(t, "```c++\nint a;\nint b;\n```\n", md)
}

func TestRender_IndentedBlockDescIsDedented(t *testing.T) {
	src := "void f() {\n\t/*desc\n\tSome text.\n\t  nested\n\tdesc*/\n}\n"
	md := Render([]byte(src), commentsOf(src, "/*desc\n\tSome text.\n\t  nested\n\tdesc*/"), "c++")
	assert.Equal(t, "Some text.\n  nested\n", md)
}

func TestRender_AdjacentLineDescsStayTogether(t *testing.T) {
	src := "//desc first line  \n//desc second line\n\n//desc new paragraph\n"
	md := Render([]byte(src), commentsOf(src, "//desc first line  ", "//desc second line", "//desc new paragraph"), "c++")
	assert.Equal(t, "first line  \nsecond line\n\nnew paragraph\n", md)
}

func TestDedent(t *testing.T) {
	assert.Equal(t, []string{"a", "  b", "", "c"}, dedent([]string{"\ta", "\t  b", "", "\tc"}))
	assert.Equal(t, []string{"a", " b"}, dedent([]string{"a", " b"}))
}
