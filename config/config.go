package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/dustin/go-wikigraph"
)

// AppName names the XDG config directory.
const AppName = "wikigraph"

// DefaultConfigFile is looked for in the current directory.
const DefaultConfigFile = ".wikigraph.yaml"

var (
	// ErrConfigNotFound is returned by Load when the file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrInvalidInterval is returned for a non-positive progress interval.
	ErrInvalidInterval = errors.New("invalid progress interval: must be positive")
	// ErrInvalidLevel is returned for an unknown log level.
	ErrInvalidLevel = errors.New("invalid log level: want debug, info, warn or error")
	// ErrInvalidFormat is returned for an unknown log format.
	ErrInvalidFormat = errors.New("invalid log format: want text or json")
)

// Log configures the diagnostics logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Progress sets how often long passes report.
type Progress struct {
	Pages int64 `yaml:"pages"`
	Edges int64 `yaml:"edges"`
}

// Output names the default artifact files.
type Output struct {
	Mapping string `yaml:"mapping"`
	Graph   string `yaml:"graph"`
}

type Couchbase struct {
	URL    string `yaml:"url"`
	Bucket string `yaml:"bucket"`
}

type Mongo struct {
	URL        string `yaml:"url"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type Elasticsearch struct {
	URL   string `yaml:"url"`
	Index string `yaml:"index"`
}

// Export lists the stores `wikigraph load` writes to. Empty URLs are
// skipped.
type Export struct {
	SQLite        string        `yaml:"sqlite"`
	Couchbase     Couchbase     `yaml:"couchbase"`
	CouchDB       string        `yaml:"couchdb"`
	Mongo         Mongo         `yaml:"mongo"`
	Elasticsearch Elasticsearch `yaml:"elasticsearch"`
}

// Config is the whole configuration file.
type Config struct {
	Log      Log      `yaml:"log"`
	Progress Progress `yaml:"progress"`
	Output   Output   `yaml:"output"`
	Export   Export   `yaml:"export"`
}

// Default gets the configuration used when there's no file.
func Default() *Config {
	return &Config{
		Log:      Log{Level: "info", Format: "text"},
		Progress: Progress{Pages: wikigraph.DefaultPageInterval, Edges: wikigraph.DefaultEdgeInterval},
		Output:   Output{Mapping: "titlemap.cbor", Graph: "graph.cbor"},
		Export: Export{
			Couchbase:     Couchbase{Bucket: "default"},
			Mongo:         Mongo{Database: "wp", Collection: "articles"},
			Elasticsearch: Elasticsearch{Index: "wikigraph"},
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find locates the configuration file, returning "" when there is none.
// An explicit path is returned only if it exists.
func Find(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// XDGConfigDir is where the per-user configuration lives.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Resolve finds and loads the configuration. An explicit path that does
// not exist is an error; otherwise a missing file means defaults.
func Resolve(explicit string) (*Config, error) {
	path := Find(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("%s: %w", explicit, ErrConfigNotFound)
		}
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the values that would otherwise misbehave later.
func (c *Config) Validate() error {
	if c.Progress.Pages <= 0 || c.Progress.Edges <= 0 {
		return ErrInvalidInterval
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return ErrInvalidFormat
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, ErrInvalidLevel
}

// Logger builds the logger described by the Log section. verbose forces
// debug level.
func (c *Config) Logger(w io.Writer, verbose bool) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Options gets the pass options for this configuration.
func (c *Config) Options(sink wikigraph.Sink) wikigraph.Options {
	return wikigraph.Options{
		Sink:         sink,
		PageInterval: c.Progress.Pages,
		EdgeInterval: c.Progress.Edges,
	}
}
