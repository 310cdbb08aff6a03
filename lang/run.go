package lang

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/tuxedo/value"
)

// run is the state of one top-level render or evaluation.
type run struct {
	ctx      context.Context
	e        *Engine
	c        *Context
	seen     map[string]bool
	memo     map[memoKey]memoEntry
	memoGen  uint64
	diags    []error
	depth    int
	volatile int
	canceled bool
}

// memoKey identifies one evaluation by its trimmed expression and the Context
// generation it observed.
type memoKey struct {
	expr string
	gen  uint64
}

type memoEntry struct {
	v  value.Value
	ok bool
}

func (e *Engine) newRun(ctx context.Context, c *Context) *run {
	if ctx == nil {
		ctx = context.Background()
	}

	return &run{
		ctx:  ctx,
		e:    e,
		c:    c,
		seen: make(map[string]bool),
		memo: make(map[memoKey]memoEntry),
	}
}

// enter increments the nesting depth. It returns false, and records a
// diagnostic on the first occurrence, when the engine bound is reached.
func (r *run) enter() bool {
	if r.depth >= r.e.maxDepth {
		r.report(ErrMaxDepthExceeded.With(slog.Int("max", r.e.maxDepth)))
		r.volatile++

		return false
	}

	r.depth++

	return true
}

func (r *run) leave() { r.depth-- }

// recall returns the memoized result of evaluating expr against the current
// Context generation.
func (r *run) recall(expr string) (memoKey, memoEntry, bool) {
	if r.c.gen != r.memoGen {
		// The generation only grows, so older entries can never match.
		clear(r.memo)
		r.memoGen = r.c.gen
	}

	k := memoKey{expr: expr, gen: r.c.gen}
	m, ok := r.memo[k]

	return k, m, ok
}

// remember stores the result of an evaluation that started with key k and
// volatile count vol. Nothing is stored if the evaluation changed the Context,
// produced a fresh value, hit the depth bound, or was interrupted.
func (r *run) remember(k memoKey, vol int, v value.Value, ok bool) {
	if r.canceled || r.volatile != vol || r.c.gen != k.gen {
		return
	}

	r.memo[k] = memoEntry{v: v, ok: ok}
}

// report records a diagnostic. Identical diagnostics are recorded once, since
// backtracking may evaluate the same region more than once.
func (r *run) report(err *Error) {
	key := err.Error()
	for _, a := range err.Attrs() {
		key += " " + a.String()
	}

	if r.seen[key] {
		return
	}

	r.seen[key] = true
	r.diags = append(r.diags, err)

	r.e.logger.WarnContext(r.ctx, "template diagnostic", slog.Any("error", err))
}

// interrupted reports whether the render context is done.
func (r *run) interrupted() bool {
	if r.canceled {
		return true
	}

	if err := r.ctx.Err(); err != nil {
		r.canceled = true
		r.diags = append(r.diags, err)

		r.e.logger.WarnContext(r.ctx, "render interrupted", slog.Any("error", err))

		return true
	}

	return false
}

func (r *run) trace(msg string, attrs ...slog.Attr) {
	r.e.logger.TraceContext(r.ctx, msg, attrs...)
}

// err returns the collected diagnostics when the engine is strict. A
// canceled context is always returned.
func (r *run) err() error {
	if r.canceled {
		return errors.Join(r.diags...)
	}

	if !r.e.strict || len(r.diags) == 0 {
		return nil
	}

	return errors.Join(r.diags...)
}

