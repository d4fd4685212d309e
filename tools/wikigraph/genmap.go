package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dustin/go-wikigraph"
)

// NewGenmapCmd creates the genmap command.
func NewGenmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genmap DUMPFILE",
		Short: "Generate the title mapping from a dump",
		Long: `Read every page of DUMPFILE and write the mapping between titles and
page ids, along with the redirects, as CBOR.`,
		Args: cobra.ExactArgs(1),
		RunE: runGenmap,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default from configuration)")
	return cmd
}

func runGenmap(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	out, err := output(cmd, e.conf.Output.Mapping)
	if err != nil {
		return err
	}

	start := time.Now()
	e.log.Info("processing dump file", "dump", args[0])
	tm, err := wikigraph.BuildTitleMapping(args[0], e.options())
	if err != nil {
		return fmt.Errorf("building title mapping: %w", err)
	}
	if err := wikigraph.WriteFile(out, tm); err != nil {
		return err
	}
	e.log.Info("wrote title mapping", "path", out,
		"titles", humanize.Comma(int64(len(tm.TitleToID))),
		"redirects", humanize.Comma(int64(len(tm.Redirects))),
		"elapsed", time.Since(start))
	return nil
}
