package docassoc

import (
	"log/slog"
)

// Engine runs the scan, classify, resolve and emit pipeline over source
// files. An Engine holds no state between calls and is safe for concurrent
// use; every call gets its own comment cursor and [Registry].
type Engine struct {
	log                 *slog.Logger
	publicOnly          bool
	trailingInheritance bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for debug output about skipped
// statements. The default, also used for a nil l, discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPublicOnly limits results to declarations at namespace scope and
// public members of public classes. Comments are still consumed by
// filtered declarations.
func WithPublicOnly(enabled bool) Option {
	return func(e *Engine) {
		e.publicOnly = enabled
	}
}

// WithTrailingInheritance lets nested forward declarations inherit the
// documentation of an enclosing class documented by a trailing comment.
// By default only a preceding comment is inherited.
func WithTrailingInheritance(enabled bool) Option {
	return func(e *Engine) {
		e.trailingInheritance = enabled
	}
}

// NewEngine creates a new [Engine].
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Analyze scans src and returns the documentation result of every
// documentable declaration. It returns an error matching [ErrScan] when src
// cannot be scanned.
func (e *Engine) Analyze(src []byte) (*Result, error) {
	units, err := Scan(src)
	if err != nil {
		return nil, err
	}

	return Emit(e.Resolve(units, NewRegistry())), nil
}

// Resolve associates comments with the declarations in units, in source
// order. reg collects in-class member declarations; a nil reg is replaced
// with an empty one.
func (e *Engine) Resolve(units []Unit, reg *Registry) []Association {
	if reg == nil {
		reg = NewRegistry()
	}

	r := &resolver{
		log:                 e.log,
		cur:                 newCursor(),
		reg:                 reg,
		publicOnly:          e.publicOnly,
		trailingInheritance: e.trailingInheritance,
	}

	r.walk(units, &frame{})

	e.log.Debug("resolved declarations",
		slog.Int("declarations", len(r.out)),
		slog.Int("comments", r.cur.count()),
		slog.Int("members", reg.Len()),
	)

	return r.out
}
