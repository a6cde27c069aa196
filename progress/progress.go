// Package progress defines the injected progress-observer surface spec.md
// §4.6 requires of the compressor ("the compressor must periodically
// publish progress = (iterations completed, nodes removed last pass)...
// consumers may ignore it") plus two concrete sinks.
package progress

import "github.com/rs/zerolog"

// Report is one progress update: the compressor has completed Iteration
// passes, and the most recent pass removed Removed nodes (0 means the
// fixed point was reached and this is the final report).
type Report struct {
	Iteration int
	Removed   int
	NodesLeft int
}

// Sink receives progress Reports. Implementations must not block the
// compressor for long; spec.md §5 notes this is the only observability
// channel in an otherwise single-threaded, non-cancellable pipeline.
type Sink interface {
	Report(r Report)
}

// NoopSink discards every report. It is the default when a caller has no
// use for progress (spec.md: "consumers may ignore it").
type NoopSink struct{}

// Report implements Sink by doing nothing.
func (NoopSink) Report(Report) {}

// ZerologSink logs each report as a structured event at debug level,
// matching cmd/graphgen's own run-logging conventions.
type ZerologSink struct {
	Logger zerolog.Logger
}

// NewZerologSink returns a ZerologSink writing through logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{Logger: logger}
}

// Report implements Sink.
func (s *ZerologSink) Report(r Report) {
	s.Logger.Debug().
		Int("iteration", r.Iteration).
		Int("removed", r.Removed).
		Int("nodes_left", r.NodesLeft).
		Msg("compress: pass complete")
}
