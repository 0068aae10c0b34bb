package main

import (
	"fmt"

	"gendoc/internal/toc"

	"github.com/spf13/cobra"
)

var (
	tocMaxLevel    int
	tocMinHeadings int
	tocFile        string
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Table of contents tools",
}

var tocUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Insert or refresh the table of contents of a markdown file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := toc.UpdateFile(tocFile, toc.Options{
			MaxLevel:    tocMaxLevel,
			MinHeadings: tocMinHeadings,
		})
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintf(cmd.OutOrStdout(), "📑 Updated table of contents in %s\n", tocFile)
		}
		return nil
	},
}

func init() {
	tocUpdateCmd.Flags().IntVar(&tocMaxLevel, "max-level", toc.DefaultMaxLevel, "Deepest heading level to list")
	tocUpdateCmd.Flags().IntVar(&tocMinHeadings, "min-headings", toc.DefaultMinHeadings, "Minimum number of headings before a table is written")
	tocUpdateCmd.Flags().StringVar(&tocFile, "file", "", "Markdown file to update")
	_ = tocUpdateCmd.MarkFlagRequired("file")

	tocCmd.AddCommand(tocUpdateCmd)
}
