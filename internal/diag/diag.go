// Package diag reports the errors panebar recovers from.
//
// Recovery itself never depends on the reporter: callers fall back to their
// documented default first and report second. The reporter only decides
// whether anyone hears about it. Its level is fixed when the reporter is
// built and cannot change afterwards.
package diag

import (
	"fmt"
	"log/slog"
)

// Level controls whether recovered errors are emitted.
type Level int

const (
	// LevelSilent recovers without emitting anything.
	LevelSilent Level = 0
	// LevelReport emits one diagnostic per recovered error.
	LevelReport Level = 1
)

// ParseLevel validates a configured reporting level.
func ParseLevel(n int) (Level, error) {
	switch Level(n) {
	case LevelSilent, LevelReport:
		return Level(n), nil
	default:
		return LevelSilent, fmt.Errorf("unknown diagnostics level %d (want 0 or 1)", n)
	}
}

// Kind classifies a diagnostic.
type Kind string

const (
	KindDuplicateIdentifier     Kind = "duplicate_identifier"
	KindUnknownIdentifier       Kind = "unknown_identifier"
	KindInvalidDelegateResponse Kind = "invalid_delegate_response"
	KindMalformedPane           Kind = "malformed_pane"
)

// Diagnostic describes one recovered error.
type Diagnostic struct {
	Kind    Kind
	Manager string
	Message string
	Err     error
	Attrs   []slog.Attr
}

// Sink receives emitted diagnostics.
type Sink interface {
	Emit(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

// Emit implements Sink.
func (f SinkFunc) Emit(d Diagnostic) { f(d) }

// Reporter is the reporting channel for recovered errors. A nil Reporter
// discards everything.
type Reporter struct {
	level    Level
	log      *slog.Logger
	sinks    []Sink
	observer func(Kind)
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger routes emitted diagnostics to log at warn level.
func WithLogger(log *slog.Logger) Option {
	return func(r *Reporter) {
		r.log = log
	}
}

// WithSink adds a sink for emitted diagnostics.
func WithSink(s Sink) Option {
	return func(r *Reporter) {
		if s != nil {
			r.sinks = append(r.sinks, s)
		}
	}
}

// WithObserver registers fn to be called for every recovered error,
// regardless of level. Used for metrics.
func WithObserver(fn func(Kind)) Option {
	return func(r *Reporter) {
		r.observer = fn
	}
}

// NewReporter creates a reporter at the given level.
func NewReporter(level Level, opts ...Option) *Reporter {
	r := &Reporter{level: level}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Level returns the reporter's fixed level.
func (r *Reporter) Level() Level {
	if r == nil {
		return LevelSilent
	}
	return r.level
}

// Report records a recovered error.
func (r *Reporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	if r.observer != nil {
		r.observer(d.Kind)
	}
	if r.level < LevelReport {
		return
	}

	if r.log != nil {
		attrs := []any{
			slog.String("kind", string(d.Kind)),
		}
		if d.Manager != "" {
			attrs = append(attrs, slog.String("manager", d.Manager))
		}
		if d.Err != nil {
			attrs = append(attrs, slog.String("error", d.Err.Error()))
		}
		for _, a := range d.Attrs {
			attrs = append(attrs, a)
		}
		r.log.Warn(d.Message, attrs...)
	}

	for _, s := range r.sinks {
		s.Emit(d)
	}
}

// Recorder is a Sink that keeps every diagnostic it receives.
type Recorder struct {
	Diagnostics []Diagnostic
}

// Emit implements Sink.
func (rec *Recorder) Emit(d Diagnostic) {
	rec.Diagnostics = append(rec.Diagnostics, d)
}

// Count returns how many recorded diagnostics have the given kind.
func (rec *Recorder) Count(kind Kind) int {
	n := 0
	for _, d := range rec.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
