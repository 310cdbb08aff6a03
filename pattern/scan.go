package pattern

import "strings"

// isWord reports whether c is an identifier character.
func isWord(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// IsIdentifier reports whether s is a non-empty identifier: a letter or
// underscore followed by letters, digits, or underscores.
func IsIdentifier(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}

	for i := range len(s) {
		if !isWord(s[i]) {
			return false
		}
	}

	return true
}

// at reports whether lit occurs in text at offset k. Literals that begin or end
// with an identifier character only match on a word boundary on that side.
func at(text string, k int, lit string) bool {
	if lit == "" || !strings.HasPrefix(text[k:], lit) {
		return false
	}

	if isWord(lit[0]) && k > 0 && isWord(text[k-1]) {
		return false
	}

	end := k + len(lit)
	if isWord(lit[len(lit)-1]) && end < len(text) && isWord(text[end]) {
		return false
	}

	return true
}

// longest returns the longest literal in lits occurring at offset k.
func longest(text string, k int, lits []string) (string, bool) {
	var (
		best  string
		found bool
	)

	for _, lit := range lits {
		if len(lit) > len(best) && at(text, k, lit) {
			best, found = lit, true
		}
	}

	return best, found
}

// exprScanner tracks quote and bracket nesting while walking an expression.
type exprScanner struct {
	quote byte
	depth int
}

// step advances over text[k] and reports false when text[k] closes a bracket
// that was never opened.
func (s *exprScanner) step(c byte) bool {
	if s.quote != 0 {
		if c == s.quote {
			s.quote = 0
		}

		return true
	}

	switch c {
	case '\'', '"':
		s.quote = c

	case '(', '[', '{':
		s.depth++

	case ')', ']', '}':
		if s.depth == 0 {
			return false
		}

		s.depth--
	}

	return true
}

func (s *exprScanner) top() bool { return s.quote == 0 && s.depth == 0 }

// Split divides text at every top-level occurrence of sep, ignoring separators
// inside quotes and brackets. Each part is trimmed of surrounding white space.
// Split of blank text returns nil.
func Split(text, sep string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		parts []string
		scan  exprScanner
		start int
	)

	for k := 0; k < len(text); k++ {
		if scan.top() && strings.HasPrefix(text[k:], sep) {
			parts = append(parts, strings.TrimSpace(text[start:k]))
			start = k + len(sep)
			k += len(sep) - 1

			continue
		}

		scan.step(text[k])
	}

	return append(parts, strings.TrimSpace(text[start:]))
}

// Cut slices text around the first top-level occurrence of sep.
func Cut(text, sep string) (before, after string, found bool) {
	var scan exprScanner

	for k := 0; k < len(text); k++ {
		if scan.top() && strings.HasPrefix(text[k:], sep) {
			return text[:k], text[k+len(sep):], true
		}

		scan.step(text[k])
	}

	return text, "", false
}

// Enclosed reports whether text begins with the bracket open and the bracket
// matching it is the final byte of text. It returns the text between them.
func Enclosed(text string, open byte) (inner string, ok bool) {
	if len(text) < 2 || text[0] != open {
		return "", false
	}

	var scan exprScanner

	for k := 0; k < len(text); k++ {
		if !scan.step(text[k]) {
			return "", false
		}

		if k > 0 && scan.top() {
			if k != len(text)-1 {
				return "", false
			}

			return text[1:k], true
		}
	}

	return "", false
}

// Balanced reports whether every quote and bracket in text is closed.
func Balanced(text string) bool {
	var scan exprScanner

	for k := range len(text) {
		if !scan.step(text[k]) {
			return false
		}
	}

	return scan.top()
}

// Quoted reports whether text is a single quoted string delimited by ' or "
// with no inner occurrence of its delimiter. It returns the unquoted content.
func Quoted(text string) (string, bool) {
	if len(text) < 2 {
		return "", false
	}

	q := text[0]
	if (q != '\'' && q != '"') || text[len(text)-1] != q {
		return "", false
	}

	inner := text[1 : len(text)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return "", false
	}

	return inner, true
}

// Contains reports whether lit occurs in text outside every region nested
// between one of opens and one of closes.
func Contains(text, lit string, opens, closes []string) bool {
	depth := 0

	for k := 0; k < len(text); {
		if depth == 0 && at(text, k, lit) {
			return true
		}

		if o, ok := longest(text, k, opens); ok {
			depth++
			k += len(o)

			continue
		}

		if c, ok := longest(text, k, closes); ok {
			if depth > 0 {
				depth--
			}

			k += len(c)

			continue
		}

		k++
	}

	return false
}
