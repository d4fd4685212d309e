package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikigraph"
)

// NewGengraphCmd creates the gengraph command.
func NewGengraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gengraph DUMPFILE TMAPFILE",
		Short: "Generate the link graph from a dump and its title mapping",
		Long: `Read every page of DUMPFILE, resolve its links through the mapping in
TMAPFILE (following at most one redirect) and write the graph as CBOR.`,
		Args: cobra.ExactArgs(2),
		RunE: runGengraph,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default from configuration)")
	return cmd
}

func runGengraph(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	out, err := output(cmd, e.conf.Output.Graph)
	if err != nil {
		return err
	}

	tm, err := wikigraph.ReadTitleMappingFile(args[1])
	if err != nil {
		return err
	}

	start := time.Now()
	e.log.Info("processing dump file", "dump", args[0])
	g, stats, err := wikigraph.BuildLinkGraph(tm, args[0], e.options())
	if err != nil {
		return fmt.Errorf("building link graph: %w", err)
	}
	if err := wikigraph.WriteFile(out, g); err != nil {
		return err
	}
	e.log.Info("wrote link graph", "path", out,
		"pages", humanize.Comma(stats.Pages),
		"good", humanize.Comma(stats.GoodEdges),
		"bad", humanize.Comma(stats.BadEdges),
		"empty", humanize.Comma(stats.EmptyLinks),
		"elapsed", time.Since(start))
	return nil
}
