package lang

import (
	"maps"
	"time"

	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/value"
)

// DefaultMaxDepth is the default bound on nested evaluation and rendering.
// Users may modify this before calling [New] to change the default.
var DefaultMaxDepth = 256

// Engine renders templates.
//
// An Engine is immutable after [New] returns and is safe for concurrent use.
// Each concurrent render needs its own [Context].
type Engine struct {
	loader   Loader
	clock    func() time.Time
	globals  map[string]value.Value
	logger   log.Logger
	literals []value.Recognizer
	rules    []rule
	tags     []tag
	maxDepth int
	strict   bool
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLoader sets the loader that resolves import tags. Without a loader,
// imports are recorded as [ErrNoLoader] diagnostics.
func WithLoader(loader Loader) Option {
	return func(e *Engine) {
		e.loader = loader
	}
}

// WithLogger sets the structured logger for trace-level debugging and
// diagnostics. If not provided, the logger is zero-valued and all logging is a
// no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrict makes Render return the diagnostics collected during a render
// joined into one error.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithMaxDepth bounds nested evaluation, template rendering, and block
// resolution passes.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithGlobals adds variables visible to every render. Variables supplied to a
// render shadow globals of the same name.
func WithGlobals(vars map[string]any) Option {
	return func(e *Engine) {
		maps.Copy(e.globals, value.OfMap(vars))
	}
}

// WithClock sets the source of the now literal.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:    time.Now,
		globals:  make(map[string]value.Value),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.literals = value.Recognizers(e.clock)
	e.rules = rules()
	e.tags = tags()

	return e
}

// With returns a copy of e with opts applied.
func (e *Engine) With(opts ...Option) *Engine {
	c := *e
	c.globals = maps.Clone(e.globals)

	for _, opt := range opts {
		opt(&c)
	}

	c.literals = value.Recognizers(c.clock)

	return &c
}

// NewContext returns a Context holding the engine globals overlaid with vars.
func (e *Engine) NewContext(vars map[string]any) *Context {
	c := NewContext(nil)

	maps.Copy(c.scopes[0].vars, e.globals)
	maps.Copy(c.scopes[0].vars, value.OfMap(vars))

	return c
}

// Logger returns the engine logger.
func (e *Engine) Logger() log.Logger { return e.logger }

// Strict reports whether diagnostics are returned as errors.
func (e *Engine) Strict() bool { return e.strict }
