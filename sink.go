package wikigraph

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// A Sink receives the diagnostics produced while a dump is read.
//
// Warn is called for every recoverable problem (see the Err* values in
// this package). Progress is called periodically with a running counter.
type Sink interface {
	Warn(err error)
	Progress(counter string, n int64)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(error)              {}
func (discard) Progress(string, int64) {}

// LogSink reports diagnostics to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a LogSink writing to l, or to slog.Default() when l
// is nil.
func NewLogSink(l *slog.Logger) *LogSink {
	if l == nil {
		l = slog.Default()
	}
	return &LogSink{Logger: l}
}

func (s *LogSink) Warn(err error) {
	s.Logger.Warn("dump irregularity", "err", err)
}

func (s *LogSink) Progress(counter string, n int64) {
	s.Logger.Info("processed "+humanize.Comma(n)+" "+counter,
		"counter", counter, "count", n)
}

// Options tune a single pass over a dump.
type Options struct {
	// Sink receives warnings and progress. Nil means Discard.
	Sink Sink
	// PageInterval is how many pages go by between progress reports.
	PageInterval int64
	// EdgeInterval is how many good (or bad) edges go by between
	// progress reports and dangling link samples.
	EdgeInterval int64
}

// Default reporting intervals.
const (
	DefaultPageInterval = 10000
	DefaultEdgeInterval = 100000
)

func (o Options) withDefaults() Options {
	if o.Sink == nil {
		o.Sink = Discard
	}
	if o.PageInterval <= 0 {
		o.PageInterval = DefaultPageInterval
	}
	if o.EdgeInterval <= 0 {
		o.EdgeInterval = DefaultEdgeInterval
	}
	return o
}
