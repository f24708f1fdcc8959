package nfh

import (
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single run search unless overridden.
const DefaultTimeout = 60 * time.Second

const tracerName = "github.com/rfielding/kripke-nfh/nfh"

// Mode selects how idle symbols are matched against track contents.
type Mode uint8

const (
	// Asynchronous lets an idle symbol pause a track that still has input,
	// so tracks advance at independent rates.
	Asynchronous Mode = iota
	// Synchronous only matches an idle symbol against an exhausted track,
	// which makes idle pure end-of-word padding.
	Synchronous
)

func (m Mode) String() string {
	switch m {
	case Asynchronous:
		return "async"
	case Synchronous:
		return "sync"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts async/asynchronous and sync/synchronous.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "async", "asynchronous":
		return Asynchronous, nil
	case "sync", "synchronous":
		return Synchronous, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want async or sync)", s)
}

type searchOptions struct {
	timeout   time.Duration
	noTimeout bool
	noMemo    bool
	mode      Mode
	start     State
	hasStart  bool
	logger    *zap.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures run searches and membership checks.
type Option func(*searchOptions)

func buildOptions(opts []Option) searchOptions {
	o := searchOptions{
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// WithTimeout sets the wall-clock budget of each run search. A budget of
// zero or less expires before the first step.
func WithTimeout(d time.Duration) Option {
	return func(o *searchOptions) {
		o.timeout = d
		o.noTimeout = false
	}
}

// WithoutTimeout disables the deadline check. Only use it for inputs known
// to terminate quickly; cycles are still safe but the search is unbounded
// in wall-clock time.
func WithoutTimeout() Option {
	return func(o *searchOptions) { o.noTimeout = true }
}

// WithoutMemo stops remembering exhausted keys. Only the current path is
// tracked for cycle safety, so verdicts are unchanged but work can be
// exponential.
func WithoutMemo() Option {
	return func(o *searchOptions) { o.noMemo = true }
}

func WithMode(m Mode) Option {
	return func(o *searchOptions) { o.mode = m }
}

// WithStartState restricts the search to runs starting in q instead of
// every initial state.
func WithStartState(q State) Option {
	return func(o *searchOptions) {
		o.start = q
		o.hasStart = true
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *searchOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *searchOptions) { o.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *searchOptions) { o.tracer = t }
}
