package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"gendoc/internal/crawler"
	"gendoc/internal/docfile"
	"gendoc/internal/postprocess"
	"gendoc/internal/toc"
)

const DefaultPath = "gendoc.yaml"

type Config struct {
	SourceRoot string `yaml:"source_root"`
	DocRoot    string `yaml:"doc_root"`
	Force      bool   `yaml:"force"`
	TabWidth   int    `yaml:"tab_width"`
	Database   string `yaml:"database"` // run journal, empty disables it
	Discovery  struct {
		Pattern string   `yaml:"pattern"`
		Ignore  []string `yaml:"ignore"`
	} `yaml:"discovery"`
	Toc struct {
		Enabled     bool     `yaml:"enabled"`
		MinHeadings int      `yaml:"min_headings"`
		MaxLevel    int      `yaml:"max_level"`
		Command     []string `yaml:"command"` // argv prefix; empty runs "<self> toc"
	} `yaml:"toc"`
	Documents map[string]Document `yaml:"documents"`
}

// Document is a per-document override. Unset fields keep the defaults.
type Document struct {
	Target         string      `yaml:"target"`
	GenerateToc    *bool       `yaml:"generate_toc,omitempty"`
	TocMinHeadings *int        `yaml:"toc_min_headings,omitempty"`
	PostAction     *PostAction `yaml:"post_action,omitempty"`
}

// PostAction selects one of the supported post actions by Kind.
type PostAction struct {
	Kind string `yaml:"kind"`
	Old  string `yaml:"old"`
	New  string `yaml:"new"`
}

const postActionReplaceText = "replace_text"

// Build returns the action described by p.
func (p PostAction) Build() (docfile.PostAction, error) {
	switch p.Kind {
	case postActionReplaceText:
		if p.Old == "" {
			return nil, fmt.Errorf("post action %s: old text is empty", p.Kind)
		}
		return docfile.ReplaceText{Old: p.Old, New: p.New}, nil
	default:
		return nil, fmt.Errorf("unknown post action kind %q", p.Kind)
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		SourceRoot: "docsrc",
		DocRoot:    "doc",
		TabWidth:   postprocess.DefaultTabWidth,
		Database:   ".gendoc.db",
		Documents:  map[string]Document{},
	}
	cfg.Discovery.Pattern = crawler.DefaultPattern
	cfg.Discovery.Ignore = append([]string{}, crawler.DefaultIgnored...)
	cfg.Toc.Enabled = true
	cfg.Toc.MinHeadings = docfile.DefaultTocMinHeadings
	cfg.Toc.MaxLevel = toc.DefaultMaxLevel
	return cfg
}

// LoadConfig reads path on top of the defaults. A missing file yields an
// error wrapping fs.ErrNotExist.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(base)

	// 3. Override with Environment Variables if present
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// LoadDefault returns the defaults with environment overrides applied.
func LoadDefault() (*Config, error) {
	_ = godotenv.Load()
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from GENDOC_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("GENDOC_SOURCE_ROOT"); v != "" {
		c.SourceRoot = v
	}
	if v := os.Getenv("GENDOC_DOC_ROOT"); v != "" {
		c.DocRoot = v
	}
	if v, ok := os.LookupEnv("GENDOC_DB"); ok {
		c.Database = v
	}
	if v := os.Getenv("GENDOC_FORCE"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GENDOC_FORCE %q: %w", v, err)
		}
		c.Force = force
	}
	return nil
}

// resolvePaths makes relative paths in the file relative to base.
func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.SourceRoot = abs(c.SourceRoot)
	c.DocRoot = abs(c.DocRoot)
	c.Database = abs(c.Database)
	for name, doc := range c.Documents {
		doc.Target = abs(doc.Target)
		c.Documents[name] = doc
	}
}

func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return fmt.Errorf("source_root is required")
	}
	if c.DocRoot == "" {
		return fmt.Errorf("doc_root is required")
	}
	if c.TabWidth <= 0 {
		return fmt.Errorf("tab_width must be positive, got %d", c.TabWidth)
	}
	if c.Toc.MaxLevel <= 0 {
		return fmt.Errorf("toc.max_level must be positive, got %d", c.Toc.MaxLevel)
	}
	for name, doc := range c.Documents {
		if doc.PostAction != nil {
			if _, err := doc.PostAction.Build(); err != nil {
				return fmt.Errorf("documents.%s: %w", name, err)
			}
		}
	}
	return c.validateSchema()
}

// TocWanted reports whether any document can ask for a table of contents,
// either through the global switch or a generate_toc override.
func (c *Config) TocWanted() bool {
	if c.Toc.Enabled {
		return true
	}
	for _, doc := range c.Documents {
		if doc.GenerateToc != nil && *doc.GenerateToc {
			return true
		}
	}
	return false
}

// Overrides converts the documents table for the resolver.
func (c *Config) Overrides() (map[string]docfile.Override, error) {
	overrides := make(map[string]docfile.Override, len(c.Documents))
	for name, doc := range c.Documents {
		o := docfile.Override{
			Target:         doc.Target,
			GenerateToc:    doc.GenerateToc,
			TocMinHeadings: doc.TocMinHeadings,
		}
		if doc.PostAction != nil {
			action, err := doc.PostAction.Build()
			if err != nil {
				return nil, fmt.Errorf("documents.%s: %w", name, err)
			}
			o.PostAction = action
		}
		overrides[name] = o
	}
	return overrides, nil
}
