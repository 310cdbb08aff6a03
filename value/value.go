package value

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used to print [KindDate] values.
const DateLayout = "2006-01-02 15:04:05"

// Value is a tagged union of the runtime types understood by templates.
//
// The zero Value is [Empty]. Values are immutable: operations that appear to
// modify a sequence or mapping return a new Value.
type Value struct {
	t    time.Time
	m    *Mapping
	str  string
	seq  []Value
	num  float64
	kind Kind
	b    bool
}

// Empty returns the value that represents the absence of a value.
func Empty() Value { return Value{} }

// FromNumber returns a [KindNumber] value.
func FromNumber(f float64) Value { return Value{kind: KindNumber, num: f} }

// FromInt returns a [KindNumber] value holding the integer converted to
// float64.
func FromInt(i int) Value { return FromNumber(float64(i)) }

// FromText returns a [KindText] value.
func FromText(s string) Value { return Value{kind: KindText, str: s} }

// FromBool returns a [KindBool] value.
func FromBool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromDate returns a [KindDate] value.
func FromDate(t time.Time) Value { return Value{kind: KindDate, t: t} }

// FromSequence returns a [KindSequence] value holding the given elements.
// The slice is not copied.
func FromSequence(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}

	return Value{kind: KindSequence, seq: elems}
}

// Sequence returns a [KindSequence] value holding the given elements.
func Sequence(elems ...Value) Value { return FromSequence(elems) }

// FromMapping returns a [KindMapping] value. A nil mapping is replaced with an
// empty one.
func FromMapping(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}

	return Value{kind: KindMapping, m: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is [Empty].
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsText returns the text held by v.
func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsDate returns the time held by v.
func (v Value) AsDate() (time.Time, bool) { return v.t, v.kind == KindDate }

// AsSequence returns the elements held by v. Callers must not modify the
// returned slice.
func (v Value) AsSequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// AsMapping returns the mapping held by v.
func (v Value) AsMapping() (*Mapping, bool) { return v.m, v.kind == KindMapping }

// String prints v using the kind-specific printer.
func (v Value) String() string {
	var sb strings.Builder

	v.print(&sb)

	return sb.String()
}

func (v Value) print(sb *strings.Builder) {
	switch v.kind {
	case KindEmpty:
		sb.WriteString("null")

	case KindNumber:
		sb.WriteString(FormatNumber(v.num))

	case KindText:
		sb.WriteString(v.str)

	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))

	case KindDate:
		sb.WriteString(v.t.Format(DateLayout))

	case KindSequence:
		for i, e := range v.seq {
			if i > 0 {
				sb.WriteByte(',')
			}

			e.print(sb)
		}

	case KindMapping:
		sb.WriteByte('[')

		for i, key := range v.m.SortedKeys() {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(key)
			sb.WriteString(": ")

			elem, _ := v.m.Get(key)
			elem.print(sb)
		}

		sb.WriteByte(']')
	}
}

// FormatNumber prints f in general form with six significant digits and no
// trailing zeros, so 2/3 prints as 0.666667 and 1234567 as 1.23457e+06.
// Infinities print as inf and -inf.
func FormatNumber(f float64) string {
	switch {
	case f == 0:
		// Also folds negative zero.
		return "0"
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	return strconv.FormatFloat(f, 'g', 6, 64)
}

// IsInteger reports whether f has no fractional part.
func IsInteger(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// Equal reports whether a and b hold the same kind and the same content.
// Sequences and mappings compare element-wise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindEmpty:
		return true

	case KindNumber:
		return a.num == b.num

	case KindText:
		return a.str == b.str

	case KindBool:
		return a.b == b.b

	case KindDate:
		return a.t.Equal(b.t)

	case KindSequence:
		return slices.EqualFunc(a.seq, b.seq, Equal)

	case KindMapping:
		if a.m.Len() != b.m.Len() {
			return false
		}

		for key, x := range a.m.All() {
			y, ok := b.m.Get(key)
			if !ok || !Equal(x, y) {
				return false
			}
		}

		return true
	}

	return false
}

// Compare orders a and b. Numbers, texts, booleans, and dates of the same kind
// compare naturally; any other pair compares by kind and then by printed form.
func Compare(a, b Value) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindNumber:
			return cmpFloat(a.num, b.num)

		case KindText:
			return strings.Compare(a.str, b.str)

		case KindBool:
			switch {
			case a.b == b.b:
				return 0
			case b.b:
				return -1
			default:
				return 1
			}

		case KindDate:
			return a.t.Compare(b.t)
		}
	}

	if a.kind != b.kind {
		return cmpFloat(float64(a.kind), float64(b.kind))
	}

	return strings.Compare(a.String(), b.String())
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
