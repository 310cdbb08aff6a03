package value

import (
	"testing"
	"time"
)

// identity evaluates only literals, standing in for the expression evaluator.
func identity(expr string) (Value, bool) {
	return ParseLiteral(expr, identity)
}

func TestParseLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
		kind Kind
		ok   bool
	}{
		{"'single'", "single", KindText, true},
		{`"double"`, "double", KindText, true},
		{`'it"s'`, `it"s`, KindText, true},
		{"'a' + 'b'", "", KindEmpty, false},
		{"true", "true", KindBool, true},
		{"false", "false", KindBool, true},
		{"[1, 'two', [3]]", "1,two,3", KindSequence, true},
		{"[]", "", KindSequence, true},
		{"[1] + [2]", "", KindEmpty, false},
		{"[x, 1]", "x,1", KindSequence, true},
		{"{'a': 1, b: 2}", "[a: 1, b: 2]", KindMapping, true},
		{"{'a': 1, 'a': 2}", "[a: 1]", KindMapping, true},
		{"{}", "[]", KindMapping, true},
		{"{a}", "", KindEmpty, false},
		{"pi", "3.14159", KindNumber, true},
		{"42", "42", KindNumber, true},
		{"-1.5", "-1.5", KindNumber, true},
		{"+7", "7", KindNumber, true},
		{".5", "0.5", KindNumber, true},
		{"1e3", "1000", KindNumber, true},
		{"1.", "", KindEmpty, false},
		{"null", "null", KindEmpty, true},
		{"nil", "null", KindEmpty, true},
		{"name", "", KindEmpty, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			v, ok := ParseLiteral(tt.text, identity)
			if ok != tt.ok {
				t.Fatalf("ParseLiteral(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}

			if !ok {
				return
			}

			if v.Kind() != tt.kind {
				t.Errorf("ParseLiteral(%q) kind = %s, want %s", tt.text, v.Kind(), tt.kind)
			}

			if got := v.String(); got != tt.want {
				t.Errorf("ParseLiteral(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNowLiteral(t *testing.T) {
	t.Parallel()

	at := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

	for _, rec := range Recognizers(func() time.Time { return at }) {
		v, ok := rec("now", identity)
		if !ok {
			continue
		}

		if d, _ := v.AsDate(); !d.Equal(at) {
			t.Errorf("now = %v, want %v", d, at)
		}

		return
	}

	t.Fatal("now was not recognized")
}

func TestSequenceElementsKeepRawText(t *testing.T) {
	t.Parallel()

	v, ok := ParseLiteral("[a b, 2]", identity)
	if !ok {
		t.Fatal("sequence not recognized")
	}

	seq, _ := v.AsSequence()
	if len(seq) != 2 {
		t.Fatalf("len = %d, want 2", len(seq))
	}

	if s, _ := seq[0].AsText(); s != "a b" {
		t.Errorf("seq[0] = %q, want raw text %q", s, "a b")
	}
}
