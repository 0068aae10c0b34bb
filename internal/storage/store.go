package storage

import (
	"context"
	"time"
)

// Status is the outcome of processing one documentation source.
type Status string

const (
	StatusGenerated   Status = "generated"
	StatusSkipped     Status = "skipped"
	StatusUnmatched   Status = "unmatched"
	StatusUnsupported Status = "unsupported"
	StatusFailed      Status = "failed"
)

// FileResult records what happened to a single source file.
type FileResult struct {
	Source  string
	Target  string
	Status  Status
	Message string
}

// Run is one invocation of the build.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Force      bool
	Generated  int
	Skipped    int
	Failed     int
	Error      string
}

// Journal records build runs and their per-file results.
type Journal interface {
	BeginRun(ctx context.Context, force bool) (int64, error)
	RecordResult(ctx context.Context, runID int64, result FileResult) error
	FinishRun(ctx context.Context, run Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
	RunResults(ctx context.Context, runID int64) ([]FileResult, error)
	Close() error
}
