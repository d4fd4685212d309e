// Command wikigraph turns a MediaWiki XML dump into a title mapping and a
// link graph of page ids.
//
// Usage:
//
//	wikigraph genmap enwiki-pages-articles.xml.bz2 -o titlemap.cbor
//	wikigraph gengraph enwiki-pages-articles.xml.bz2 titlemap.cbor -o graph.cbor
//	wikigraph stats titlemap.cbor graph.cbor
//	wikigraph load titlemap.cbor graph.cbor
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dustin/go-wikigraph"
	"github.com/dustin/go-wikigraph/config"
)

func main() {
	Execute()
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikigraph",
		Short: "Build a link graph of the pages in a Wikipedia dump",
		Long: `wikigraph reads a MediaWiki XML dump (optionally bzip2 compressed)
and produces a title mapping and a directed graph of page links.

Run genmap first, then gengraph with the mapping genmap wrote.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewGenmapCmd())
	cmd.AddCommand(NewGengraphCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewLoadCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every subcommand needs from the flags and configuration.
type env struct {
	conf *config.Config
	log  *slog.Logger
}

func setup(cmd *cobra.Command) (*env, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	conf, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	logger, err := conf.Logger(cmd.ErrOrStderr(), verbose)
	if err != nil {
		return nil, err
	}
	return &env{conf: conf, log: logger}, nil
}

func (e *env) options() wikigraph.Options {
	return e.conf.Options(wikigraph.NewLogSink(e.log))
}

// output gets the -o flag, falling back to def.
func output(cmd *cobra.Command, def string) (string, error) {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	if out == "" {
		out = def
	}
	return out, nil
}
