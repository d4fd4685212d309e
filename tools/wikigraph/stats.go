package main

import (
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikigraph"
	"github.com/dustin/go-wikigraph/report"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats TMAPFILE GRAPHFILE",
		Short: "Summarize a title mapping and link graph as Markdown",
		Args:  cobra.ExactArgs(2),
		RunE:  runStats,
	}
	cmd.Flags().IntP("top", "n", 10, "How many of the most linked pages to list")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	tm, err := wikigraph.ReadTitleMappingFile(args[0])
	if err != nil {
		return err
	}
	g, err := wikigraph.ReadLinkGraphFile(args[1])
	if err != nil {
		return err
	}
	return report.WriteMarkdown(cmd.OutOrStdout(), report.Summarize(tm, g, top))
}
