package lang

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

// tag is one block-level template construct.
type tag struct {
	pattern *pattern.Pattern
	render  func(r *run, m *pattern.Match) (string, bool)
	name    string
}

const (
	ifOpen    = "{% if"
	ifElse    = "{% else %}"
	ifClose   = "{% endif %}"
	setClose  = "{% endset %}"
	tagSuffix = "%}"
)

// tags returns the tag table in the order tags are tried.
func tags() []tag {
	return []tag{
		{
			name: "if-else",
			pattern: pattern.New(
				pattern.Open(ifOpen), pattern.Slot("cond"), pattern.Keyword(tagSuffix),
				pattern.Body("then"),
				pattern.Keyword(ifElse),
				pattern.Body("else"),
				pattern.Close(ifClose),
			),
			render: renderIf,
		},
		{
			name: "if",
			pattern: pattern.New(
				pattern.Open(ifOpen), pattern.Slot("cond"), pattern.Keyword(tagSuffix),
				pattern.Body("then").Check(withoutElse),
				pattern.Close(ifClose),
			),
			render: renderIf,
		},
		{
			name: "print",
			pattern: pattern.New(
				pattern.Keyword("{{"), pattern.Slot("expr"), pattern.Keyword("}}"),
			),
			render: renderPrint,
		},
		{
			name: "for",
			pattern: pattern.New(
				pattern.Open("{% for"),
				pattern.Name("var").Check(pattern.IsIdentifier),
				pattern.Keyword("in"),
				pattern.Slot("items"),
				pattern.Keyword(tagSuffix),
				pattern.Body("body"),
				pattern.Close("{% endfor %}"),
			),
			render: renderFor,
		},
		{
			name: "set",
			pattern: pattern.New(
				pattern.Keyword("{% set"),
				pattern.Name("name").Check(pattern.IsIdentifier),
				pattern.Keyword("="),
				pattern.Slot("value"),
				pattern.Keyword(tagSuffix),
			),
			render: renderSet,
		},
		{
			name: "set-global",
			pattern: pattern.New(
				pattern.Keyword("{% set global"),
				pattern.Name("name").Check(pattern.IsIdentifier),
				pattern.Keyword("="),
				pattern.Slot("value"),
				pattern.Keyword(tagSuffix),
			),
			render: renderSetGlobal,
		},
		{
			name: "set-body",
			pattern: pattern.New(
				pattern.Keyword("{% set"),
				pattern.Name("name").Check(pattern.IsIdentifier),
				pattern.Keyword(tagSuffix),
				pattern.Text("body"),
				pattern.Keyword(setClose),
			),
			render: renderSetBody,
		},
		{
			name: "block",
			pattern: pattern.New(
				pattern.Open("{% block"),
				pattern.Name("name").Check(pattern.IsIdentifier),
				pattern.Keyword(tagSuffix),
				pattern.Body("body"),
				pattern.Close("{% endblock %}"),
			),
			render: renderBlockTag,
		},
		{
			name: "macro",
			pattern: pattern.New(
				pattern.Open("{% macro"),
				pattern.Name("name").Check(pattern.IsIdentifier),
				pattern.Keyword("("),
				pattern.Text("params").Check(isParamList),
				pattern.Keyword(") %}"),
				pattern.Body("body"),
				pattern.Close("{% endmacro %}"),
			),
			render: renderMacro,
		},
		{
			name: "comment",
			pattern: pattern.New(
				pattern.Keyword("{#"), pattern.Text("body"), pattern.Keyword("#}"),
			),
			render: func(*run, *pattern.Match) (string, bool) { return "", true },
		},
		{
			name: "import",
			pattern: pattern.New(
				pattern.Keyword("{% import"), pattern.Slot("file"), pattern.Keyword(tagSuffix),
			),
			render: renderImport,
		},
		{
			name: "spaceless",
			pattern: pattern.New(
				pattern.Open("{% spaceless %}"),
				pattern.Body("body"),
				pattern.Close("{% endspaceless %}"),
			),
			render: renderSpaceless,
		},
	}
}

// withoutElse accepts an if body that has no else branch of its own.
func withoutElse(body string) bool {
	return !pattern.Contains(body, ifElse, []string{ifOpen}, []string{ifClose})
}

func isParamList(text string) bool {
	for _, p := range pattern.Split(text, ",") {
		if !pattern.IsIdentifier(p) {
			return false
		}
	}

	return true
}

func renderIf(r *run, m *pattern.Match) (string, bool) {
	cond, ok := r.operand(m, "cond")
	if !ok {
		return "", false
	}

	b, ok := cond.AsBool()
	if !ok {
		return "", false
	}

	if b {
		return r.render(m.Get("then")), true
	}

	return r.render(m.Get("else")), true
}

func renderPrint(r *run, m *pattern.Match) (string, bool) {
	v, ok := r.operand(m, "expr")
	if !ok {
		return "", false
	}

	return v.String(), true
}

func renderFor(r *run, m *pattern.Match) (string, bool) {
	items, ok := r.operand(m, "items")
	if !ok {
		return "", false
	}

	seq, ok := items.AsSequence()
	if !ok {
		return "", false
	}

	name, body := m.Get("var"), m.Get("body")

	r.c.Push()
	defer r.c.Pop()

	loop := &loopState{items: seq}
	r.c.innermost().loop = loop
	r.c.touch()

	var sb strings.Builder

	for i, item := range seq {
		if r.interrupted() {
			break
		}

		loop.index = i
		r.c.Set(name, item)
		sb.WriteString(r.render(body))
	}

	return sb.String(), true
}

func renderSet(r *run, m *pattern.Match) (string, bool) {
	v, ok := r.operand(m, "value")
	if !ok {
		return "", false
	}

	r.c.Set(m.Get("name"), v)

	return "", true
}

func renderSetGlobal(r *run, m *pattern.Match) (string, bool) {
	v, ok := r.operand(m, "value")
	if !ok {
		return "", false
	}

	r.c.SetGlobal(m.Get("name"), v)

	return "", true
}

func renderSetBody(r *run, m *pattern.Match) (string, bool) {
	r.c.Set(m.Get("name"), value.FromText(r.render(m.Get("body"))))

	return "", true
}

func renderBlockTag(r *run, m *pattern.Match) (string, bool) {
	name := m.Get("name")

	if r.c.addBlock(name, m.Get("body")) {
		return placeholder(name), true
	}

	return "", true
}

func renderMacro(r *run, m *pattern.Match) (string, bool) {
	r.c.DefineMacro(Macro{
		Name:   m.Get("name"),
		Params: pattern.Split(m.Get("params"), ","),
		Body:   m.Get("body"),
	})

	return "", true
}

// renderImport renders the loaded template in the current context. Loader
// failures are recorded and render as empty text.
func renderImport(r *run, m *pattern.Match) (string, bool) {
	file, ok := r.operand(m, "file")
	if !ok {
		return "", false
	}

	name, ok := file.AsText()
	if !ok {
		r.report(ErrInvalidImport.With(slog.String("kind", file.Kind().String())))

		return "", true
	}

	if r.e.loader == nil {
		r.report(ErrNoLoader.With(slog.String("name", name)))

		return "", true
	}

	text, err := r.e.loader.Load(r.ctx, name)
	if err != nil {
		r.report(ErrImport.Wrap(err).With(slog.String("name", name)))

		return "", true
	}

	r.trace("import", slog.String("name", name), slog.Int("bytes", len(text)))

	return r.render(trimMarkers(text)), true
}

func renderSpaceless(r *run, m *pattern.Match) (string, bool) {
	return strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}

		return c
	}, r.render(m.Get("body"))), true
}
