//go:build property

package lang

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTrimProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("marker removes surrounding white space only", prop.ForAll(
		func(a, b string, left, right int) bool {
			text := a + strings.Repeat(" \t\n", left) + TrimMarker + strings.Repeat("\n ", right) + b

			return trimMarkers(text) == a+b
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(0, 4),
		gen.IntRange(0, 4),
	))

	properties.Property("text without markers is unchanged", prop.ForAll(
		func(s string) bool {
			return trimMarkers(s) == s
		},
		gen.RegexMatch(`^[a-z {}%\n]*$`).SuchThat(func(s string) bool {
			return !strings.Contains(s, TrimMarker)
		}),
	))

	properties.TestingRun(t)
}

func TestArithmeticProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	e := New()

	properties.Property("addition prints the integer sum", prop.ForAll(
		func(x, y int) bool {
			out, err := e.Render(t.Context(), "{{ x + y }}", map[string]any{"x": x, "y": y})

			return err == nil && out == strconv.Itoa(x+y)
		},
		gen.IntRange(-1e5, 1e5),
		gen.IntRange(-1e5, 1e5),
	))

	properties.Property("subtraction associates to the left", prop.ForAll(
		func(a, b, c int) bool {
			out, err := e.Render(t.Context(),
				"{{ a - b - c }}", map[string]any{"a": a, "b": b, "c": c})

			return err == nil && out == strconv.Itoa(a-b-c)
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
	))

	properties.Property("integer literals print canonically", prop.ForAll(
		func(n int) bool {
			v, ok := e.Evaluate(t.Context(), strconv.Itoa(n), nil)

			return ok && v.String() == strconv.Itoa(n)
		},
		gen.IntRange(-999999, 999999),
	))

	properties.Property("rendering is deterministic", prop.ForAll(
		func(items []int) bool {
			vars := map[string]any{"items": items}
			text := "{% for i in items %}{% if i is even %}{{ i }}{% else %}-{% endif %}{% endfor %}" +
				"{{ items.sort.join(',') }}"

			first, err1 := e.Render(t.Context(), text, vars)
			second, err2 := e.Render(t.Context(), text, vars)

			return err1 == nil && err2 == nil && first == second
		},
		gen.SliceOfN(6, gen.IntRange(-50, 50)),
	))

	properties.TestingRun(t)
}
