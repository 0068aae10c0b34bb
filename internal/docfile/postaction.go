package docfile

import (
	"fmt"
	"os"
	"strings"
)

// PostAction is a text transformation run on a generated file after the
// markdown post-processing steps.
type PostAction interface {
	Name() string
	Apply(path string) error
}

// ReplaceText replaces every occurrence of Old with New in the file.
type ReplaceText struct {
	Old string
	New string
}

func (r ReplaceText) Name() string {
	return "replace_text"
}

func (r ReplaceText) Apply(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	replaced := strings.ReplaceAll(string(content), r.Old, r.New)
	if err := os.WriteFile(path, []byte(replaced), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
