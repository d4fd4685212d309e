package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikigraph"
	"github.com/dustin/go-wikigraph/export"
)

var errNoStores = errors.New("no export destinations configured")

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load TMAPFILE GRAPHFILE",
		Short: "Load a title mapping and link graph into the configured stores",
		Long: `Load one document per page into every store named in the export
section of the configuration: SQLite, Couchbase, CouchDB, MongoDB and
Elasticsearch are supported.`,
		Args: cobra.ExactArgs(2),
		RunE: runLoad,
	}
}

func runLoad(cmd *cobra.Command, args []string) (err error) {
	e, err := setup(cmd)
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

	stores, err := export.FromConfig(e.conf.Export)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		return errNoStores
	}
	defer func() {
		if cerr := export.CloseAll(stores); err == nil {
			err = cerr
		}
	}()

	start := time.Now()
	if err := export.LoadAll(cmd.Context(), stores, tm, g); err != nil {
		return err
	}
	e.log.Info("loaded", "stores", len(stores), "elapsed", time.Since(start))
	return nil
}
