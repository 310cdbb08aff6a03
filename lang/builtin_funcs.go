package lang

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

// function is a builtin callable with positional arguments.
type function func(r *run, args []value.Value) (value.Value, bool)

// functions returns the builtin function table.
func functions() map[string]function {
	return map[string]function{
		"min":    numericFunction("min"),
		"max":    numericFunction("max"),
		"sum":    numericFunction("sum"),
		"avg":    numericFunction("avg"),
		"sqrt":   unaryFunction(math.Sqrt),
		"round":  unaryFunction(math.Round),
		"abs":    unaryFunction(math.Abs),
		"String": stringFunction,
		"Date":   dateFunction,
		"uuid":   uuidFunction,
	}
}

// Builtins returns the names of the builtin functions in ascending order.
func Builtins() []string {
	names := []string{"parent", "range"}
	for name := range functions() {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

var builtins = functions()

// reduceCall dispatches fn(args) to parent, range, a user macro, or a builtin
// function, in that order.
func reduceCall(r *run, m *pattern.Match) (value.Value, bool) {
	fn, text := m.Get("fn"), m.Get("args")

	switch fn {
	case "parent":
		return r.parent(text)
	case "range":
		return r.rangeBySteps(text)
	}

	if mac, ok := r.c.Macro(fn); ok {
		args, ok := r.args(text)
		if !ok {
			return value.Empty(), false
		}

		return r.invoke(mac, args)
	}

	f, ok := builtins[fn]
	if !ok {
		r.report(ErrUnknownMacro.With(slog.String("name", fn)))

		return value.Empty(), false
	}

	args, ok := r.args(text)
	if !ok {
		return value.Empty(), false
	}

	return f(r, args)
}

// invoke binds args to the macro parameters in a new scope, missing arguments
// as Empty, and evaluates the body as an expression. A body that is not an
// expression is rendered as a template.
func (r *run) invoke(mac Macro, args []value.Value) (value.Value, bool) {
	r.c.Push()
	defer r.c.Pop()

	for i, p := range mac.Params {
		if i < len(args) {
			r.c.Set(p, args[i])
		} else {
			r.c.Set(p, value.Empty())
		}
	}

	r.trace("macro", slog.String("name", mac.Name), slog.Int("args", len(args)))

	if v, ok := r.eval(mac.Body); ok {
		return v, true
	}

	return value.FromText(r.render(mac.Body)), true
}

// parent renders the previous renderer of the running block with the named
// arguments bound over its variables.
func (r *run) parent(text string) (value.Value, bool) {
	frame, ok := r.c.block()
	if !ok {
		return value.Empty(), false
	}

	args, ok := r.namedArgs(text)
	if !ok {
		return value.Empty(), false
	}

	s, ok := r.renderBlock(frame.name, frame.index-1, args)
	if !ok {
		return value.Empty(), false
	}

	return value.FromText(s), true
}

// rangeBySteps implements range(start=a, end=b, step=c): a, a+c, ... while not
// past b.
func (r *run) rangeBySteps(text string) (value.Value, bool) {
	args, ok := r.namedArgs(text)
	if !ok {
		return value.Empty(), false
	}

	var bounds [3]float64

	for i, name := range []string{"start", "end", "step"} {
		v, ok := args[name]
		if !ok {
			return value.Empty(), false
		}

		if bounds[i], ok = v.AsNumber(); !ok {
			return value.Empty(), false
		}
	}

	start, end, step := bounds[0], bounds[1], bounds[2]
	if step <= 0 {
		return value.Empty(), false
	}

	seq := []value.Value{value.FromNumber(start)}
	for n := start; n <= end-step; {
		n += step
		seq = append(seq, value.FromNumber(n))
	}

	return value.FromSequence(seq), true
}

// numericFunction adapts an aggregate to take its numbers as arguments.
func numericFunction(name string) function {
	return func(_ *run, args []value.Value) (value.Value, bool) {
		nums, ok := numbers(args)
		if !ok || len(nums) == 0 {
			return value.Empty(), false
		}

		return aggregate(name, nums)
	}
}

func unaryFunction(f func(float64) float64) function {
	return func(_ *run, args []value.Value) (value.Value, bool) {
		if len(args) != 1 {
			return value.Empty(), false
		}

		n, ok := args[0].AsNumber()
		if !ok {
			return value.Empty(), false
		}

		return value.FromNumber(f(n)), true
	}
}

func stringFunction(_ *run, args []value.Value) (value.Value, bool) {
	if len(args) != 1 {
		return value.Empty(), false
	}

	if args[0].Kind() != value.KindNumber {
		return value.Empty(), false
	}

	return value.FromText(args[0].String()), true
}

// dateFunction implements Date(year, month, day[, hour[, minute[, second]]])
// in local time.
func dateFunction(_ *run, args []value.Value) (value.Value, bool) {
	if len(args) < 3 || len(args) > 6 {
		return value.Empty(), false
	}

	nums, ok := numbers(args)
	if !ok {
		return value.Empty(), false
	}

	var c [6]int
	for i, n := range nums {
		c[i] = int(n)
	}

	return value.FromDate(time.Date(
		c[0], time.Month(c[1]), c[2], c[3], c[4], c[5], 0, time.Local,
	)), true
}

func uuidFunction(r *run, args []value.Value) (value.Value, bool) {
	if len(args) != 0 {
		return value.Empty(), false
	}

	r.volatile++

	return value.FromText(uuid.NewString()), true
}
