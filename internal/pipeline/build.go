package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gendoc/internal/converter"
	"gendoc/internal/crawler"
	"gendoc/internal/docfile"
	"gendoc/internal/postprocess"
	"gendoc/internal/storage"
)

// Options holds the run-wide settings of a Build.
type Options struct {
	Force   bool
	Out     io.Writer       // progress output, os.Stdout when nil
	Journal storage.Journal // optional
}

// Build discovers documentation sources and regenerates stale targets.
type Build struct {
	crawler   *crawler.Crawler
	resolver  *docfile.Resolver
	converter *converter.Converter
	post      *postprocess.Processor
	journal   storage.Journal
	force     bool
	out       io.Writer
}

// Summary describes a finished run.
type Summary struct {
	RunID     int64
	Results   []storage.FileResult
	Generated int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

func NewBuild(cr *crawler.Crawler, r *docfile.Resolver, c *converter.Converter, p *postprocess.Processor, opts Options) *Build {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Build{
		crawler:   cr,
		resolver:  r,
		converter: c,
		post:      p,
		journal:   opts.Journal,
		force:     opts.Force,
		out:       out,
	}
}

// Run processes every discovered file. Per-file problems with the name or
// type are reported and skipped; any other error aborts the run.
func (b *Build) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	files, err := b.discoverStage()
	if err != nil {
		return summary, err
	}

	if b.journal != nil {
		summary.RunID, err = b.journal.BeginRun(ctx, b.force)
		if err != nil {
			return summary, err
		}
	}

	runErr := b.processStage(ctx, files, summary)
	summary.Duration = time.Since(start)

	if b.journal != nil {
		run := storage.Run{
			ID:        summary.RunID,
			Generated: summary.Generated,
			Skipped:   summary.Skipped,
			Failed:    summary.Failed,
		}
		if runErr != nil {
			run.Error = runErr.Error()
		}
		if err := b.journal.FinishRun(ctx, run); err != nil && runErr == nil {
			runErr = err
		}
	}

	return summary, runErr
}

func (b *Build) discoverStage() ([]string, error) {
	root := b.resolver.SourceRoot()
	fmt.Fprintf(b.out, "📂 Scanning %s...\n", root)
	files, err := b.crawler.Collect(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}

func (b *Build) processStage(ctx context.Context, files []string, summary *Summary) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := b.ProcessFile(ctx, file)
		if err != nil {
			result.Status = storage.StatusFailed
			result.Message = err.Error()
		}

		summary.Results = append(summary.Results, result)
		switch result.Status {
		case storage.StatusGenerated:
			summary.Generated++
		case storage.StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}

		if b.journal != nil {
			if jerr := b.journal.RecordResult(ctx, summary.RunID, result); jerr != nil && err == nil {
				err = jerr
			}
		}
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", file, err)
		}
	}
	return nil
}

// ProcessFile runs one source file through resolve, freshness check,
// conversion and post-processing.
func (b *Build) ProcessFile(ctx context.Context, sourcePath string) (storage.FileResult, error) {
	result := storage.FileResult{Source: sourcePath}

	doc, err := b.resolver.Resolve(sourcePath)
	if errors.Is(err, docfile.ErrUnmatchedName) || errors.Is(err, docfile.ErrOutsideRoot) {
		fmt.Fprintf(b.out, "⚠️  Skipping %v\n", err)
		result.Status = storage.StatusUnmatched
		result.Message = err.Error()
		return result, nil
	}
	if err != nil {
		return result, err
	}
	result.Target = doc.TargetPath

	upToDate, err := docfile.IsUpToDate(doc.SourcePath, doc.TargetPath, b.force)
	if err != nil {
		return result, err
	}
	if upToDate {
		fmt.Fprintf(b.out, "⏭️  %s is up to date, skip.\n", doc.TargetPath)
		result.Status = storage.StatusSkipped
		return result, nil
	}

	err = b.converter.Convert(ctx, doc)
	if errors.Is(err, converter.ErrUnsupportedType) {
		fmt.Fprintf(b.out, "⚠️  Unknown file type: %s (%s)\n", doc.Ext, sourcePath)
		result.Status = storage.StatusUnsupported
		result.Message = err.Error()
		return result, nil
	}
	if err != nil {
		return result, err
	}
	fmt.Fprintf(b.out, "📝 Generate %s\n", doc.TargetPath)

	if err := b.post.Process(ctx, doc); err != nil {
		return result, err
	}

	result.Status = storage.StatusGenerated
	return result, nil
}
