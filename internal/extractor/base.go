package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
)

// Language describes how comments are located in one source language.
type Language struct {
	Name  string
	Fence string // info string used on emitted code fences
	get   func() *sitter.Language
}

// Grammar returns the tree-sitter grammar of the language.
func (l Language) Grammar() *sitter.Language {
	return l.get()
}

var (
	cppLanguage = Language{Name: "cpp", Fence: "c++", get: cpp.GetLanguage}
	cLanguage   = Language{Name: "c", Fence: "c", get: c.GetLanguage}
	goLanguage  = Language{Name: "go", Fence: "go", get: golang.GetLanguage}
)

// Headers are parsed as C++, which is a superset for the doc comment grammar.
var languagesByExt = map[string]Language{
	"cpp": cppLanguage,
	"cc":  cppLanguage,
	"cxx": cppLanguage,
	"hpp": cppLanguage,
	"hxx": cppLanguage,
	"h":   cppLanguage,
	"c":   cLanguage,
	"go":  goLanguage,
}

// commentQuery is valid for every grammar above.
const commentQuery = `(comment) @comment`

// Comment is a single comment node with its byte range in the source.
type Comment struct {
	Text      string
	StartByte uint32
	EndByte   uint32
}
