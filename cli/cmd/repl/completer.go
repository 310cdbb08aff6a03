package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tuxedo/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "reset", "clear", "quit"}

// keywords are the operator words of the expression language.
var keywords = []string{
	"and", "or", "not", "in", "is", "even", "odd", "first", "last",
	"exists", "true", "false", "null", "now",
}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: white space, the member-access dot, and operator or punctuation
// characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';',
		'\'', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// afterDot reports whether the word starting at wordStart is the member of a
// member access.
func afterDot(input string, wordStart int) bool {
	return wordStart > 0 && input[wordStart-1] == '.'
}

// candidates returns the completions for a word. Members complete to the
// builtin methods and, for a variable receiver, its mapping keys. Other words
// complete to variables, macros, builtin functions, and keywords.
func candidates(c *lang.Context, input string, wordStart int) []string {
	if afterDot(input, wordStart) {
		names := lang.Methods()

		recv, _, _ := wordBounds(input, wordStart-1)
		if v, ok := c.Get(recv); ok {
			if mp, ok := v.AsMapping(); ok {
				names = append(mp.SortedKeys(), names...)
			}
		}

		return names
	}

	names := slices.Concat(c.Names(), c.Macros(), lang.Builtins(), keywords)
	slices.Sort(names)

	return slices.Compact(names)
}

// isFunction reports whether name is a macro or a builtin function.
func isFunction(c *lang.Context, name string) bool {
	if _, ok := c.Macro(name); ok {
		return true
	}

	_, ok := builtinParams[name]

	return ok
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first) and the word boundaries. When the
// current word is empty at the top level, it returns nil matches. When the
// word is empty after a dot, it returns every member as a match.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var names []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, wordStart, wordEnd
		}

		names = ctrlCommands
	} else {
		names = candidates(m.scope, input, wordStart)

		if word == "" {
			if !afterDot(input, wordStart) {
				return nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(names))
			for i, name := range names {
				matches[i] = fuzzy.Match{Str: name, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	return fuzzy.Find(word, names), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func (m model) renderCandidateBar() string {
	if len(m.matches) == 0 || m.width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		rendered := m.renderCandidate(match, m.tabActive && i == m.suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if i > 0 && used+entryWidth+ellipsisWidth > m.width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Functions are displayed with a "()" suffix.
func (m model) renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	if m.mode == modeEval && isFunction(m.scope, match.Str) {
		b.WriteString(baseStyle.Render("()"))
	}

	return b.String()
}
