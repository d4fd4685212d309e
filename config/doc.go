// Package config loads wikigraph's YAML configuration.
//
// Lookup order, first hit wins:
//  1. an explicit path (--config)
//  2. .wikigraph.yaml in the current directory
//  3. config.yaml under the XDG config directory (~/.config/wikigraph on Linux)
//
// A missing file is not an error; Default() values are used instead.
package config
