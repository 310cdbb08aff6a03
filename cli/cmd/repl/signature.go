package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tuxedo/lang"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	signatureSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// builtinParams lists the parameters of the builtin functions. A leading
// "..." marks a variadic parameter.
var builtinParams = map[string][]string{
	"abs":    {"x"},
	"avg":    {"...numbers"},
	"Date":   {"year", "month", "day", "hour", "minute", "second"},
	"max":    {"...numbers"},
	"min":    {"...numbers"},
	"parent": {"...name=value"},
	"range":  {"start=", "end=", "step="},
	"round":  {"x"},
	"sqrt":   {"x"},
	"String": {"value"},
	"sum":    {"...numbers"},
	"uuid":   {},
}

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // function name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside parameter list
}

// detectFunctionCall analyzes the input to determine if the cursor is inside
// a function call's parameter list.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Scan backward from cursor to the unmatched opening paren.
	open := -1

	for i, depth := cursor-1, 0; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') &&
			!('0' <= r && r <= '9') {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" || (start > 0 && input[start-1] == '.') {
		return functionCall{}
	}

	// Count arguments by counting commas at depth 0 in the parameter list.
	argIndex, depth := 0, 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// signature returns the parameters of the macro or builtin function name.
func signature(c *lang.Context, name string) ([]string, bool) {
	if mac, ok := c.Macro(name); ok {
		return mac.Params, true
	}

	params, ok := builtinParams[name]

	return params, ok
}

// renderSignatureHint renders the function signature with the current
// parameter highlighted.
func renderSignatureHint(name string, params []string, currentArgIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureSeparatorStyle.Render(", "))
		}

		// Variadic parameters stay highlighted for every further argument.
		isVariadic := strings.HasPrefix(param, "...")

		if (isVariadic && currentArgIdx >= i) ||
			(!isVariadic && currentArgIdx == i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
