//go:build property
// +build property

package value

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValueProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("integers print canonically", prop.ForAll(
		func(n int) bool {
			return Of(n).String() == strconv.Itoa(n)
		},
		gen.IntRange(-999999, 999999),
	))

	properties.Property("number literals round trip", prop.ForAll(
		func(n int) bool {
			v, ok := ParseLiteral(strconv.Itoa(n), identity)

			return ok && v.Kind() == KindNumber && v.String() == strconv.Itoa(n)
		},
		gen.IntRange(-999999, 999999),
	))

	properties.Property("quoted text parses to its content", prop.ForAll(
		func(s string) bool {
			v, ok := ParseLiteral("'"+s+"'", identity)
			got, isText := v.AsText()

			return ok && isText && got == s
		},
		gen.AlphaString(),
	))

	properties.Property("comparison is antisymmetric", prop.ForAll(
		func(a, b float64) bool {
			return Compare(FromNumber(a), FromNumber(b)) == -Compare(FromNumber(b), FromNumber(a))
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("text compares like strings", prop.ForAll(
		func(a, b string) bool {
			return Compare(FromText(a), FromText(b)) == strings.Compare(a, b)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("sequences print joined by commas", prop.ForAll(
		func(items []int) bool {
			seq := make([]Value, len(items))
			want := make([]string, len(items))

			for i, n := range items {
				seq[i] = FromInt(n)
				want[i] = strconv.Itoa(n)
			}

			return FromSequence(seq).String() == strings.Join(want, ",")
		},
		gen.SliceOf(gen.IntRange(-1000, 1000)),
	))

	properties.TestingRun(t)
}
