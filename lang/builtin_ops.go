package lang

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

func reduceTernary(r *run, m *pattern.Match) (value.Value, bool) {
	cond, ok := r.operand(m, "cond")
	if !ok {
		return value.Empty(), false
	}

	b, ok := cond.AsBool()
	if !ok {
		return value.Empty(), false
	}

	if b {
		return r.operand(m, "then")
	}

	return r.operand(m, "else")
}

// reduceLogical implements and/or. The right operand is evaluated only when
// the left one does not decide the result.
func reduceLogical(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, ok := r.operand(m, "lhs")
	if !ok {
		return value.Empty(), false
	}

	l, ok := lhs.AsBool()
	if !ok {
		return value.Empty(), false
	}

	or := m.Keyword("op") == "or"
	if l == or {
		return value.FromBool(l), true
	}

	rhs, ok := r.operand(m, "rhs")
	if !ok {
		return value.Empty(), false
	}

	b, ok := rhs.AsBool()
	if !ok {
		return value.Empty(), false
	}

	return value.FromBool(b), true
}

func reduceNot(r *run, m *pattern.Match) (value.Value, bool) {
	rhs, ok := r.operand(m, "rhs")
	if !ok {
		return value.Empty(), false
	}

	b, ok := rhs.AsBool()
	if !ok {
		return value.Empty(), false
	}

	return value.FromBool(!b), true
}

func reduceEquality(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, rhs, ok := r.operands(m)
	if !ok {
		return value.Empty(), false
	}

	eq := value.Equal(lhs, rhs)
	if m.Keyword("op") == "!=" {
		eq = !eq
	}

	return value.FromBool(eq), true
}

// reduceRelational orders two numbers, two dates, or two texts.
func reduceRelational(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, rhs, ok := r.operands(m)
	if !ok || lhs.Kind() != rhs.Kind() {
		return value.Empty(), false
	}

	switch lhs.Kind() {
	case value.KindNumber, value.KindDate, value.KindText:
	default:
		return value.Empty(), false
	}

	c := value.Compare(lhs, rhs)

	var res bool

	switch m.Keyword("op") {
	case "<":
		res = c < 0
	case "<=":
		res = c <= 0
	case ">":
		res = c > 0
	case ">=":
		res = c >= 0
	}

	return value.FromBool(res), true
}

func reduceMembership(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, rhs, ok := r.operands(m)
	if !ok {
		return value.Empty(), false
	}

	op := m.Keyword("op")
	if op == "in" || op == "not in" {
		found, ok := contains(rhs, lhs)
		if !ok {
			return value.Empty(), false
		}

		return value.FromBool(found == (op == "in")), true
	}

	l, lok := lhs.AsText()
	s, rok := rhs.AsText()

	if !lok || !rok {
		return value.Empty(), false
	}

	switch op {
	case "starts with":
		return value.FromBool(strings.HasPrefix(l, s)), true
	case "ends with":
		return value.FromBool(strings.HasSuffix(l, s)), true
	case "contains":
		return value.FromBool(strings.Contains(l, s)), true
	case "matches":
		re, err := regexp.Compile(s)
		if err != nil {
			return value.FromBool(false), true
		}

		return value.FromBool(re.MatchString(l)), true
	}

	return value.Empty(), false
}

// contains reports whether elem belongs to the collection coll: an element of a
// sequence, a key of a mapping, or a substring of a text.
func contains(coll, elem value.Value) (found, ok bool) {
	switch coll.Kind() {
	case value.KindSequence:
		seq, _ := coll.AsSequence()

		return slices.ContainsFunc(seq, func(v value.Value) bool {
			return value.Equal(v, elem)
		}), true

	case value.KindMapping:
		k, isText := elem.AsText()
		if !isText {
			return false, false
		}

		mp, _ := coll.AsMapping()
		_, found = mp.Get(k)

		return found, true

	case value.KindText:
		k, isText := elem.AsText()
		if !isText {
			return false, false
		}

		s, _ := coll.AsText()

		return strings.Contains(s, k), true
	}

	return false, false
}

func reducePredicate(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, ok := r.operand(m, "lhs")
	if !ok {
		return value.Empty(), false
	}

	switch op := m.Keyword("op"); op {
	case "exists":
		return value.FromBool(!lhs.IsEmpty()), true

	case "is even", "is odd":
		n, ok := lhs.AsNumber()
		if !ok {
			return value.Empty(), false
		}

		even := int64(n)%2 == 0

		return value.FromBool(even == (op == "is even")), true

	default:
		loop, ok := r.c.loop()
		if !ok {
			return value.Empty(), false
		}

		var res bool

		switch op {
		case "is first":
			res = loop.first()
		case "is last":
			res = loop.last()
		case "is not first":
			res = !loop.first()
		case "is not last":
			res = !loop.last()
		}

		return value.FromBool(res), true
	}
}

// reduceRange builds an inclusive ascending sequence of integers or of single
// characters. A range whose start is past its end is empty.
func reduceRange(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, rhs, ok := r.operands(m)
	if !ok {
		return value.Empty(), false
	}

	if lo, ok := lhs.AsNumber(); ok {
		hi, ok := rhs.AsNumber()
		if !ok {
			return value.Empty(), false
		}

		var seq []value.Value
		for i := int64(lo); i <= int64(hi); i++ {
			seq = append(seq, value.FromNumber(float64(i)))
		}

		return value.FromSequence(seq), true
	}

	lo, lok := singleRune(lhs)
	hi, rok := singleRune(rhs)

	if !lok || !rok {
		return value.Empty(), false
	}

	var seq []value.Value
	for c := lo; c <= hi; c++ {
		seq = append(seq, value.FromText(string(c)))
	}

	return value.FromSequence(seq), true
}

func singleRune(v value.Value) (rune, bool) {
	s, ok := v.AsText()
	if !ok || utf8.RuneCountInString(s) != 1 {
		return 0, false
	}

	c, _ := utf8.DecodeRuneInString(s)

	return c, true
}

// reduceAdditive adds or subtracts numbers. Plus also concatenates two
// sequences, or text with text or a number.
func reduceAdditive(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, rhs, ok := r.operands(m)
	if !ok {
		return value.Empty(), false
	}

	plus := m.Keyword("op") == "+"

	if l, ok := lhs.AsNumber(); ok {
		if n, ok := rhs.AsNumber(); ok {
			if plus {
				return value.FromNumber(l + n), true
			}

			return value.FromNumber(l - n), true
		}
	}

	if !plus {
		return value.Empty(), false
	}

	switch {
	case lhs.Kind() == value.KindSequence && rhs.Kind() == value.KindSequence:
		l, _ := lhs.AsSequence()
		n, _ := rhs.AsSequence()

		return value.FromSequence(slices.Concat(l, n)), true

	case concatenable(lhs, rhs) || concatenable(rhs, lhs):
		return value.FromText(lhs.String() + rhs.String()), true
	}

	return value.Empty(), false
}

func concatenable(a, b value.Value) bool {
	return a.Kind() == value.KindText &&
		(b.Kind() == value.KindText || b.Kind() == value.KindNumber)
}

func reduceMultiplicative(r *run, m *pattern.Match) (value.Value, bool) {
	l, n, ok := r.numbers(m)
	if !ok {
		return value.Empty(), false
	}

	switch m.Keyword("op") {
	case "*":
		return value.FromNumber(l * n), true
	case "/":
		return value.FromNumber(l / n), true
	case "%":
		// Remainder of the operands truncated toward zero; it takes the sign
		// of the dividend.
		if int64(n) == 0 {
			return value.Empty(), false
		}

		return value.FromNumber(float64(int64(l) % int64(n))), true
	}

	return value.Empty(), false
}

func reducePower(r *run, m *pattern.Match) (value.Value, bool) {
	l, n, ok := r.numbers(m)
	if !ok {
		return value.Empty(), false
	}

	return value.FromNumber(math.Pow(l, n)), true
}

func reduceStep(r *run, m *pattern.Match) (value.Value, bool) {
	lhs, ok := r.operand(m, "lhs")
	if !ok {
		return value.Empty(), false
	}

	n, ok := lhs.AsNumber()
	if !ok {
		return value.Empty(), false
	}

	if m.Keyword("op") == "++" {
		return value.FromNumber(n + 1), true
	}

	return value.FromNumber(n - 1), true
}

func reduceNegate(r *run, m *pattern.Match) (value.Value, bool) {
	rhs, ok := r.operand(m, "rhs")
	if !ok {
		return value.Empty(), false
	}

	n, ok := rhs.AsNumber()
	if !ok {
		return value.Empty(), false
	}

	return value.FromNumber(-n), true
}

// numbers evaluates the lhs and rhs captures of m as numbers.
func (r *run) numbers(m *pattern.Match) (lhs, rhs float64, ok bool) {
	l, n, ok := r.operands(m)
	if !ok {
		return 0, 0, false
	}

	if lhs, ok = l.AsNumber(); !ok {
		return 0, 0, false
	}

	rhs, ok = n.AsNumber()

	return lhs, rhs, ok
}
