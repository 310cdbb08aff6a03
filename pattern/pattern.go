package pattern

import (
	"slices"
	"strings"
)

// Mode selects how a slot decides where its capture may end.
type Mode uint8

const (
	// ModeExpr captures text balanced with respect to quotes and brackets.
	ModeExpr Mode = iota
	// ModeTemplate captures text balanced with respect to the Open and Close
	// elements of the enclosing pattern, so nested tags of the same kind are
	// skipped.
	ModeTemplate
	// ModeRaw captures up to any occurrence of the following literal.
	ModeRaw
)

type elementKind uint8

const (
	kindKeyword elementKind = iota
	kindOpen
	kindClose
	kindSlot
)

// Element is one item of a [Pattern].
type Element struct {
	check func(string) bool
	name  string
	lits  []string
	kind  elementKind
	mode  Mode
	blank bool
	keep  bool
}

// Keyword matches any one of the literal alternatives. When more than one
// alternative occurs at the same offset the longest wins.
func Keyword(lits ...string) Element {
	return Element{kind: kindKeyword, lits: lits}
}

// Operator is a [Keyword] whose matched alternative is recorded under name and
// available from [Match.Keyword].
func Operator(name string, lits ...string) Element {
	return Element{kind: kindKeyword, name: name, lits: lits}
}

// Open is a keyword that increases the nesting depth seen by
// [ModeTemplate] slots of the same pattern.
func Open(lit string) Element {
	return Element{kind: kindOpen, lits: []string{lit}}
}

// Close is a keyword that decreases the nesting depth seen by
// [ModeTemplate] slots of the same pattern.
func Close(lit string) Element {
	return Element{kind: kindClose, lits: []string{lit}}
}

// Slot captures a non-blank, balanced expression. The capture is trimmed.
func Slot(name string) Element {
	return Element{kind: kindSlot, name: name, mode: ModeExpr}
}

// Name captures non-blank raw text. The capture is trimmed.
func Name(name string) Element {
	return Element{kind: kindSlot, name: name, mode: ModeRaw}
}

// Body captures a possibly empty template body balanced with respect to the
// pattern's Open and Close elements. The capture is kept verbatim.
func Body(name string) Element {
	return Element{
		kind: kindSlot, name: name, mode: ModeTemplate, blank: true, keep: true,
	}
}

// Text captures possibly empty raw text verbatim.
func Text(name string) Element {
	return Element{
		kind: kindSlot, name: name, mode: ModeRaw, blank: true, keep: true,
	}
}

// Check returns a copy of the slot element that only accepts captures for
// which fn returns true. The check runs on the processed capture and is part
// of the structural match.
func (e Element) Check(fn func(string) bool) Element {
	e.check = fn

	return e
}

// Direction selects the order in which slot split points are tried.
type Direction uint8

const (
	// Forward tries the leftmost split point first.
	Forward Direction = iota
	// Backward tries the rightmost split point first, which makes infix
	// operators associate to the left.
	Backward
)

// Pattern is an ordered sequence of elements.
//
// Patterns are immutable and safe for concurrent use.
type Pattern struct {
	elems  []Element
	opens  []string
	closes []string
	dir    Direction
}

// New returns a forward pattern of the given elements.
// It panics if two slots are adjacent, since their boundary is undefined.
func New(elems ...Element) *Pattern {
	p := &Pattern{elems: elems}

	for i, e := range elems {
		switch e.kind {
		case kindOpen:
			p.opens = append(p.opens, e.lits...)
		case kindClose:
			p.closes = append(p.closes, e.lits...)
		case kindSlot:
			if i+1 < len(elems) && elems[i+1].kind == kindSlot {
				panic("pattern: adjacent slots " + e.name + ", " + elems[i+1].name)
			}
		}
	}

	return p
}

// Backward returns a copy of p that tries rightmost split points first.
func (p *Pattern) Backward() *Pattern {
	c := *p
	c.dir = Backward

	return &c
}

// Direction returns the split order of p.
func (p *Pattern) Direction() Direction { return p.dir }

// Literals returns the literal alternatives of every keyword, open, and close
// element in declaration order.
func (p *Pattern) Literals() [][]string {
	var lits [][]string

	for _, e := range p.elems {
		if e.kind != kindSlot {
			lits = append(lits, e.lits)
		}
	}

	return lits
}

// String renders p with slots shown as <name>.
func (p *Pattern) String() string {
	parts := make([]string, 0, len(p.elems))

	for _, e := range p.elems {
		if e.kind == kindSlot {
			parts = append(parts, "<"+e.name+">")
		} else {
			parts = append(parts, strings.Join(e.lits, "|"))
		}
	}

	return strings.Join(parts, " ")
}

// Accept decides whether a structural match is valid. Returning false makes
// the matcher try the next candidate.
type Accept func(m *Match) bool

// Structural accepts every structural match.
func Structural(*Match) bool { return true }

// Match tries to match p against the entire text. Candidates are produced in
// preference order and offered to accept; the first accepted match is
// returned.
func (p *Pattern) Match(text string, accept Accept) (*Match, bool) {
	if !p.mayMatch(text, 0) {
		return nil, false
	}

	return p.run(text, 0, true, accept)
}

// MatchPrefix tries to match p against text starting at offset start. The
// match may end anywhere; [Match.End] reports where.
func (p *Pattern) MatchPrefix(text string, start int, accept Accept) (*Match, bool) {
	if len(p.elems) == 0 || p.elems[0].kind == kindSlot {
		return nil, false
	}

	if _, ok := longest(text, start, p.elems[0].lits); !ok {
		return nil, false
	}

	if !p.mayMatch(text, start) {
		return nil, false
	}

	return p.run(text, start, false, accept)
}

// mayMatch is a cheap prefilter: every literal element must occur somewhere
// after start.
func (p *Pattern) mayMatch(text string, start int) bool {
	rest := text[start:]

	for _, e := range p.elems {
		if e.kind == kindSlot {
			continue
		}

		if !slices.ContainsFunc(e.lits, func(lit string) bool {
			return strings.Contains(rest, lit)
		}) {
			return false
		}
	}

	return true
}

func (p *Pattern) run(
	text string,
	start int,
	exhaustive bool,
	accept Accept,
) (*Match, bool) {
	w := walker{
		p:          p,
		text:       text,
		exhaustive: exhaustive,
		accept:     accept,
		m:          &Match{Start: start, caps: make([]capture, 0, len(p.elems))},
	}

	if w.walk(0, start) {
		return w.m, true
	}

	return nil, false
}

type walker struct {
	p          *Pattern
	accept     Accept
	m          *Match
	text       string
	exhaustive bool
}

// walk matches elements[i:] at offset pos and reports whether an accepted
// match was found.
func (w *walker) walk(i, pos int) bool {
	elems := w.p.elems

	if i == len(elems) {
		if w.exhaustive && pos != len(w.text) {
			return false
		}

		w.m.End = pos

		return w.accept(w.m)
	}

	e := elems[i]
	if e.kind != kindSlot {
		lit, ok := longest(w.text, pos, e.lits)
		if !ok {
			return false
		}

		n := len(w.m.caps)
		if e.name != "" {
			w.m.caps = append(w.m.caps, capture{name: e.name, text: lit, op: true})
		}

		if w.walk(i+1, pos+len(lit)) {
			return true
		}

		w.m.caps = w.m.caps[:n]

		return false
	}

	if i == len(elems)-1 {
		// A trailing slot extends to the end of the text.
		return w.bind(e, i, pos, len(w.text))
	}

	next := elems[i+1].lits

	ends := w.candidates(e, pos, next)
	if w.p.dir == Backward {
		slices.Reverse(ends)
	}

	for _, end := range ends {
		if w.bind(e, i, pos, end) {
			return true
		}
	}

	return false
}

func (w *walker) bind(e Element, i, pos, end int) bool {
	raw := w.text[pos:end]

	text := raw
	if !e.keep {
		text = strings.TrimSpace(raw)
	}

	if !e.blank && strings.TrimSpace(raw) == "" {
		return false
	}

	if e.mode == ModeExpr && !Balanced(raw) {
		return false
	}

	if e.check != nil && !e.check(text) {
		return false
	}

	n := len(w.m.caps)
	w.m.caps = append(w.m.caps, capture{name: e.name, text: text})

	if w.walk(i+1, end) {
		return true
	}

	w.m.caps = w.m.caps[:n]

	return false
}

// candidates returns, in ascending order, the offsets at or after pos where a
// capture of slot e may end because one of next begins there.
func (w *walker) candidates(e Element, pos int, next []string) []int {
	var (
		ends []int
		text = w.text
	)

	switch e.mode {
	case ModeExpr:
		var scan exprScanner

		for k := pos; k < len(text); k++ {
			if scan.top() {
				if _, ok := longest(text, k, next); ok {
					ends = append(ends, k)
				}
			}

			if !scan.step(text[k]) {
				break
			}
		}

	case ModeTemplate:
		depth := 0

		for k := pos; k < len(text); {
			if depth == 0 {
				if _, ok := longest(text, k, next); ok {
					ends = append(ends, k)
				}
			}

			if lit, ok := longest(text, k, w.p.opens); ok {
				depth++
				k += len(lit)

				continue
			}

			if lit, ok := longest(text, k, w.p.closes); ok {
				if depth == 0 {
					break
				}

				depth--
				k += len(lit)

				continue
			}

			k++
		}

	case ModeRaw:
		for k := pos; k < len(text); k++ {
			if _, ok := longest(text, k, next); ok {
				ends = append(ends, k)
			}
		}
	}

	return ends
}

type capture struct {
	name string
	text string
	op   bool
}

// Match holds the captures of a successful structural match.
type Match struct {
	caps []capture
	// Start and End delimit the matched span of the input text.
	Start, End int
}

// Get returns the capture of the named slot.
func (m *Match) Get(name string) string {
	for _, c := range m.caps {
		if !c.op && c.name == name {
			return c.text
		}
	}

	return ""
}

// Keyword returns the alternative matched by the named [Operator] element.
func (m *Match) Keyword(name string) string {
	for _, c := range m.caps {
		if c.op && c.name == name {
			return c.text
		}
	}

	return ""
}
