package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

// rule is one entry of the expression rule table.
type rule struct {
	pattern *pattern.Pattern
	reduce  func(r *run, m *pattern.Match) (value.Value, bool)
	name    string
}

// rules returns the expression rule table, lowest precedence first.
func rules() []rule {
	return []rule{
		{
			name: "parentheses",
			pattern: pattern.New(
				pattern.Keyword("("), pattern.Slot("body"), pattern.Keyword(")"),
			),
			reduce: func(r *run, m *pattern.Match) (value.Value, bool) {
				return r.eval(m.Get("body"))
			},
		},
		{
			name: "ternary",
			pattern: pattern.New(
				pattern.Slot("cond"), pattern.Keyword("?"),
				pattern.Slot("then"), pattern.Keyword(":"),
				pattern.Slot("else"),
			),
			reduce: reduceTernary,
		},
		{
			name:    "or",
			pattern: infix("or"),
			reduce:  reduceLogical,
		},
		{
			name:    "and",
			pattern: infix("and"),
			reduce:  reduceLogical,
		},
		{
			name: "not",
			pattern: pattern.New(
				pattern.Keyword("not", "!"), pattern.Slot("rhs"),
			),
			reduce: reduceNot,
		},
		{
			name:    "equality",
			pattern: infix("==", "!="),
			reduce:  reduceEquality,
		},
		{
			name:    "relational",
			pattern: infix("<", "<=", ">", ">="),
			reduce:  reduceRelational,
		},
		{
			name: "membership",
			pattern: infix(
				"in", "not in", "starts with", "ends with", "contains", "matches",
			),
			reduce: reduceMembership,
		},
		{
			name: "predicate",
			pattern: suffix(
				"is first", "is last", "is not first", "is not last",
				"is even", "is odd", "exists",
			),
			reduce: reducePredicate,
		},
		{
			name: "range",
			pattern: pattern.New(
				pattern.Slot("lhs"), pattern.Keyword("..."), pattern.Slot("rhs"),
			),
			reduce: reduceRange,
		},
		{
			name:    "additive",
			pattern: infix("+", "-"),
			reduce:  reduceAdditive,
		},
		{
			name:    "multiplicative",
			pattern: infix("*", "/", "%"),
			reduce:  reduceMultiplicative,
		},
		{
			name:    "power",
			pattern: infix("**"),
			reduce:  reducePower,
		},
		{
			name:    "step",
			pattern: suffix("++", "--"),
			reduce:  reduceStep,
		},
		{
			name: "member",
			pattern: pattern.New(
				pattern.Slot("recv"),
				pattern.Keyword("."),
				pattern.Name("member").Check(isMember),
			).Backward(),
			reduce: reduceMember,
		},
		{
			name: "negate",
			pattern: pattern.New(
				pattern.Keyword("-"), pattern.Slot("rhs"),
			),
			reduce: reduceNegate,
		},
		{
			name: "call",
			pattern: pattern.New(
				pattern.Name("fn").Check(pattern.IsIdentifier),
				pattern.Keyword("("),
				pattern.Text("args").Check(pattern.Balanced),
				pattern.Keyword(")"),
			),
			reduce: reduceCall,
		},
	}
}

// infix returns a left-associative binary operator pattern over one
// precedence group.
func infix(ops ...string) *pattern.Pattern {
	return pattern.New(
		pattern.Slot("lhs"), pattern.Operator("op", ops...), pattern.Slot("rhs"),
	).Backward()
}

// suffix returns a postfix operator pattern.
func suffix(ops ...string) *pattern.Pattern {
	return pattern.New(
		pattern.Slot("lhs"), pattern.Operator("op", ops...),
	).Backward()
}

// Evaluate reduces expr to a value using the variables and macros of c. It
// reports false when no rule binds the expression.
func (e *Engine) Evaluate(ctx context.Context, expr string, c *Context) (value.Value, bool) {
	if c == nil {
		c = e.NewContext(nil)
	}

	r := e.newRun(ctx, c)

	return r.eval(expr)
}

// eval reduces expr. Results are reused within a run while the Context is
// unchanged, so backtracking over the same span is evaluated once.
func (r *run) eval(expr string) (value.Value, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return value.Empty(), false
	}

	k, m, hit := r.recall(expr)
	if hit {
		return m.v, m.ok
	}

	vol := r.volatile

	v, ok := r.evalUncached(expr)
	r.remember(k, vol, v, ok)

	return v, ok
}

// evalUncached evaluates expr by trying literals, then variable lookup, then
// each rule in priority order.
func (r *run) evalUncached(expr string) (value.Value, bool) {
	if !r.enter() {
		return value.Empty(), false
	}
	defer r.leave()

	for _, lit := range r.e.literals {
		if v, ok := lit(expr, r.eval); ok {
			return v, true
		}
	}

	if pattern.IsIdentifier(expr) {
		v, _ := r.c.Get(expr)

		return v, true
	}

	for _, rl := range r.e.rules {
		var out value.Value

		_, ok := rl.pattern.Match(expr, func(m *pattern.Match) bool {
			v, ok := rl.reduce(r, m)
			if ok {
				out = v
			}

			return ok
		})
		if ok {
			r.trace("rule matched",
				slog.String("rule", rl.name),
				slog.String("expr", expr),
				slog.String("kind", out.Kind().String()),
			)

			return out, true
		}
	}

	return value.Empty(), false
}

// operand evaluates the named capture of m.
func (r *run) operand(m *pattern.Match, name string) (value.Value, bool) {
	return r.eval(m.Get(name))
}

// operands evaluates the lhs and rhs captures of m.
func (r *run) operands(m *pattern.Match) (lhs, rhs value.Value, ok bool) {
	if lhs, ok = r.operand(m, "lhs"); !ok {
		return lhs, rhs, false
	}

	rhs, ok = r.operand(m, "rhs")

	return lhs, rhs, ok
}

// args evaluates a comma-separated argument list. It fails if any argument
// does not evaluate.
func (r *run) args(text string) ([]value.Value, bool) {
	parts := pattern.Split(text, ",")
	out := make([]value.Value, 0, len(parts))

	for _, part := range parts {
		v, ok := r.eval(part)
		if !ok {
			return nil, false
		}

		out = append(out, v)
	}

	return out, true
}

// namedArgs evaluates a comma-separated list of name=expr pairs.
func (r *run) namedArgs(text string) (map[string]value.Value, bool) {
	out := make(map[string]value.Value)

	for _, part := range pattern.Split(text, ",") {
		name, expr, found := pattern.Cut(part, "=")
		name = strings.TrimSpace(name)

		if !found || !pattern.IsIdentifier(name) {
			return nil, false
		}

		v, ok := r.eval(expr)
		if !ok {
			return nil, false
		}

		out[name] = v
	}

	return out, true
}
