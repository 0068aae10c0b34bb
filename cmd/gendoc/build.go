package main

import (
	"fmt"
	"io"
	"os"

	"gendoc/internal/config"
	"gendoc/internal/converter"
	"gendoc/internal/crawler"
	"gendoc/internal/docfile"
	"gendoc/internal/extractor"
	"gendoc/internal/pipeline"
	"gendoc/internal/postprocess"
	"gendoc/internal/storage"

	"github.com/spf13/cobra"
)

var (
	buildForce  bool
	buildSource string
	buildDoc    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate every stale document under the source root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if buildForce {
			cfg.Force = true
		}
		if buildSource != "" {
			cfg.SourceRoot = buildSource
		}
		if buildDoc != "" {
			cfg.DocRoot = buildDoc
		}

		var journal storage.Journal
		if cfg.Database != "" {
			store, err := storage.NewSQLiteStore(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer store.Close()
			journal = store
		}

		b, err := newBuild(cfg, cmd.OutOrStdout(), journal)
		if err != nil {
			return err
		}

		summary, err := b.Run(cmd.Context())
		if summary != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d generated, %d up to date, %d skipped with problems (%v)\n",
				summary.Generated, summary.Skipped, summary.Failed, summary.Duration)
		}
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Regenerate documents even when they are up to date")
	buildCmd.Flags().StringVar(&buildSource, "source", "", "Source root (overrides source_root)")
	buildCmd.Flags().StringVar(&buildDoc, "doc", "", "Output root (overrides doc_root)")
}

// newBuild wires the driver from cfg.
func newBuild(cfg *config.Config, out io.Writer, journal storage.Journal) (*pipeline.Build, error) {
	cr, err := crawler.NewCrawler(cfg.Discovery.Pattern, cfg.Discovery.Ignore)
	if err != nil {
		return nil, err
	}

	overrides, err := cfg.Overrides()
	if err != nil {
		return nil, err
	}
	r, err := docfile.NewResolver(docfile.ResolverOptions{
		SourceRoot:     cfg.SourceRoot,
		DocRoot:        cfg.DocRoot,
		GenerateToc:    cfg.Toc.Enabled,
		TocMinHeadings: cfg.Toc.MinHeadings,
		Overrides:      overrides,
	})
	if err != nil {
		return nil, err
	}

	var runner postprocess.TocRunner
	if cfg.TocWanted() {
		runner, err = newTocRunner(cfg.Toc.Command)
		if err != nil {
			return nil, err
		}
	}

	return pipeline.NewBuild(cr, r,
		converter.NewConverter(extractor.NewExtractor()),
		postprocess.NewProcessor(cfg.TabWidth, cfg.Toc.MaxLevel, runner),
		pipeline.Options{Force: cfg.Force, Out: out, Journal: journal}), nil
}

// newTocRunner runs command, or this binary's own toc command when empty.
func newTocRunner(command []string) (*postprocess.CommandTocRunner, error) {
	if len(command) == 0 {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		command = []string{self, "toc"}
	}
	return postprocess.NewCommandTocRunner(command)
}
