package value

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ardnew/tuxedo/pattern"
)

// Evaluator evaluates a nested expression. It reports false when the
// expression cannot be reduced to a value.
type Evaluator func(expr string) (Value, bool)

// Recognizer attempts to parse literal text into a value.
type Recognizer func(text string, eval Evaluator) (Value, bool)

var numberLiteral = regexp.MustCompile(`^[-+]?(\d+(\.\d+)?|\.\d+)([eE][-+]?\d+)?$`)

// Recognizers returns the literal recognizers in the order they are tried.
// The clock supplies the value of the now literal.
func Recognizers(clock func() time.Time) []Recognizer {
	return []Recognizer{
		parseText,
		parseBool,
		parseSequence,
		parseMapping,
		func(text string, _ Evaluator) (Value, bool) {
			switch text {
			case "now":
				return FromDate(clock()), true
			case "pi":
				return FromNumber(math.Pi), true
			}

			return Empty(), false
		},
		parseNumber,
		parseEmpty,
	}
}

// ParseLiteral tries each recognizer on the trimmed text.
func ParseLiteral(text string, eval Evaluator) (Value, bool) {
	for _, rec := range Recognizers(time.Now) {
		if v, ok := rec(strings.TrimSpace(text), eval); ok {
			return v, true
		}
	}

	return Empty(), false
}

func parseText(text string, _ Evaluator) (Value, bool) {
	if s, ok := pattern.Quoted(text); ok {
		return FromText(s), true
	}

	return Empty(), false
}

func parseBool(text string, _ Evaluator) (Value, bool) {
	switch text {
	case "true":
		return FromBool(true), true
	case "false":
		return FromBool(false), true
	}

	return Empty(), false
}

func parseNumber(text string, _ Evaluator) (Value, bool) {
	if !numberLiteral.MatchString(text) {
		return Empty(), false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Empty(), false
	}

	return FromNumber(f), true
}

func parseEmpty(text string, _ Evaluator) (Value, bool) {
	if text == "null" || text == "nil" {
		return Empty(), true
	}

	return Empty(), false
}

// parseSequence parses [a, b, c]. Elements that do not evaluate keep their
// raw text.
func parseSequence(text string, eval Evaluator) (Value, bool) {
	inner, ok := pattern.Enclosed(text, '[')
	if !ok {
		return Empty(), false
	}

	parts := pattern.Split(inner, ",")
	seq := make([]Value, 0, len(parts))

	for _, part := range parts {
		if v, ok := eval(part); ok {
			seq = append(seq, v)
		} else {
			seq = append(seq, FromText(part))
		}
	}

	return FromSequence(seq), true
}

// parseMapping parses {k: v, ...}. Keys must evaluate to text or be bare
// identifiers; the first occurrence of a duplicate key wins.
func parseMapping(text string, eval Evaluator) (Value, bool) {
	inner, ok := pattern.Enclosed(text, '{')
	if !ok {
		return Empty(), false
	}

	m := NewMapping()

	for _, entry := range pattern.Split(inner, ",") {
		k, v, found := pattern.Cut(entry, ":")
		if !found {
			return Empty(), false
		}

		k, v = strings.TrimSpace(k), strings.TrimSpace(v)

		key, ok := mappingKey(k, eval)
		if !ok {
			continue
		}

		elem, ok := eval(v)
		if !ok {
			elem = FromText(v)
		}

		m.Add(key, elem)
	}

	return FromMapping(m), true
}

func mappingKey(k string, eval Evaluator) (string, bool) {
	if s, ok := pattern.Quoted(k); ok {
		return s, true
	}

	if pattern.IsIdentifier(k) {
		return k, true
	}

	if v, ok := eval(k); ok {
		if s, ok := v.AsText(); ok {
			return s, true
		}
	}

	return "", false
}

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
