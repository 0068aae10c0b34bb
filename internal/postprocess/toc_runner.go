package postprocess

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandTocRunner runs an external table of contents tool:
//
//	<command...> update --max-level=N --min-headings=N --file PATH
type CommandTocRunner struct {
	command []string
}

// NewCommandTocRunner creates a runner for the given argv prefix.
func NewCommandTocRunner(command []string) (*CommandTocRunner, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, fmt.Errorf("toc command is empty")
	}
	return &CommandTocRunner{command: command}, nil
}

// Args returns the full argv used for path.
func (r *CommandTocRunner) Args(path string, minHeadings, maxLevel int) []string {
	args := append([]string{}, r.command...)
	return append(args,
		"update",
		fmt.Sprintf("--max-level=%d", maxLevel),
		fmt.Sprintf("--min-headings=%d", minHeadings),
		"--file", path,
	)
}

func (r *CommandTocRunner) Run(ctx context.Context, path string, minHeadings, maxLevel int) error {
	argv := r.Args(path, minHeadings, maxLevel)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
