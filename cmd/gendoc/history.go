package main

import (
	"fmt"
	"time"

	"gendoc/internal/storage"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent build runs from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database == "" {
			return fmt.Errorf("journal disabled: database is empty")
		}

		store, err := storage.NewSQLiteStore(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer store.Close()

		runs, err := store.RecentRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		for _, run := range runs {
			status := "ok"
			if run.Error != "" {
				status = "error: " + run.Error
			}
			force := ""
			if run.Force {
				force = " (forced)"
			}
			fmt.Fprintf(out, "#%d %s%s: %d generated, %d skipped, %d failed, %s\n",
				run.ID, run.StartedAt.Local().Format(time.DateTime), force,
				run.Generated, run.Skipped, run.Failed, status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
}
