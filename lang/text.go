package lang

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// textMethods are the argument-free text members. Casers are created per
// call because they are stateful.
var textMethods = map[string]func(string) string{
	"capitalise": func(s string) string { return cases.Title(language.Und).String(s) },
	"title":      func(s string) string { return cases.Title(language.Und).String(s) },
	"upper":      func(s string) string { return cases.Upper(language.Und).String(s) },
	"lower":      func(s string) string { return cases.Lower(language.Und).String(s) },
	"upperFirst": func(s string) string { return mapFirst(s, unicode.ToUpper) },
	"lowerFirst": func(s string) string { return mapFirst(s, unicode.ToLower) },
	"trim":       strings.TrimSpace,
	"escape":     htmlEscaper.Replace,
	"nl2br":      nl2br.Replace,
	"urlEncode":  urlEncode,
	"urlDecode": func(s string) string {
		if d, err := url.PathUnescape(s); err == nil {
			return d
		}

		return s
	},
}

func mapFirst(s string, f func(rune) rune) string {
	c, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return string(f(c)) + s[n:]
}

var nl2br = strings.NewReplacer("\r\n", "<br/>", "\n", "<br/>")

// urlEncode percent-encodes every byte of s that is not part of a letter or
// digit.
func urlEncode(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder

	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			sb.WriteRune(c)

			continue
		}

		var buf [utf8.UTFMax]byte
		for _, b := range buf[:utf8.EncodeRune(buf[:], c)] {
			sb.WriteByte('%')
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0xf])
		}
	}

	return sb.String()
}

// htmlEntities maps characters to their named HTML entities. A plain space
// becomes a non-breaking space.
var htmlEntities = []string{
	" ", "&nbsp;",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	" ", "&nbsp;",
	" ", "&ensp;",
	" ", "&emsp;",
	" ", "&thinsp;",
	"–", "&ndash;",
	"—", "&mdash;",
	"‘", "&lsquo;",
	"’", "&rsquo;",
	"‚", "&sbquo;",
	"“", "&ldquo;",
	"”", "&rdquo;",
	"„", "&bdquo;",
	"†", "&dagger;",
	"‡", "&Dagger;",
	"•", "&bull;",
	"…", "&hellip;",
	"‰", "&permil;",
	"‹", "&lsaquo;",
	"›", "&rsaquo;",
	"€", "&euro;",
	"™", "&trade;",
	"←", "&larr;",
	"↑", "&uarr;",
	"→", "&rarr;",
	"↓", "&darr;",
	"↔", "&harr;",
	"−", "&minus;",
	"∞", "&infin;",
	"≈", "&asymp;",
	"≠", "&ne;",
	"≤", "&le;",
	"≥", "&ge;",
	"¡", "&iexcl;",
	"¢", "&cent;",
	"£", "&pound;",
	"¥", "&yen;",
	"§", "&sect;",
	"©", "&copy;",
	"«", "&laquo;",
	"®", "&reg;",
	"°", "&deg;",
	"±", "&plusmn;",
	"µ", "&micro;",
	"¶", "&para;",
	"·", "&middot;",
	"»", "&raquo;",
	"¼", "&frac14;",
	"½", "&frac12;",
	"¾", "&frac34;",
	"¿", "&iquest;",
	"×", "&times;",
	"÷", "&divide;",
	"À", "&Agrave;",
	"Á", "&Aacute;",
	"Ä", "&Auml;",
	"Å", "&Aring;",
	"Ç", "&Ccedil;",
	"É", "&Eacute;",
	"Ñ", "&Ntilde;",
	"Ö", "&Ouml;",
	"Ü", "&Uuml;",
	"ß", "&szlig;",
	"à", "&agrave;",
	"á", "&aacute;",
	"ä", "&auml;",
	"å", "&aring;",
	"ç", "&ccedil;",
	"è", "&egrave;",
	"é", "&eacute;",
	"ê", "&ecirc;",
	"ñ", "&ntilde;",
	"ó", "&oacute;",
	"ö", "&ouml;",
	"ü", "&uuml;",
	"α", "&alpha;",
	"β", "&beta;",
	"γ", "&gamma;",
	"δ", "&delta;",
	"λ", "&lambda;",
	"μ", "&mu;",
	"π", "&pi;",
	"σ", "&sigma;",
	"ω", "&omega;",
	"Ω", "&Omega;",
}

var htmlEscaper = strings.NewReplacer(htmlEntities...)

// ldmlFormat formats t with a Unicode date pattern such as "dd/MM/yy". Each
// run of a known pattern letter is formatted on its own; text between single
// quotes, unknown letters and punctuation are copied verbatim. Two single
// quotes are one quote, inside or outside a quoted section.
func ldmlFormat(t time.Time, p string) string {
	var sb strings.Builder

	for i := 0; i < len(p); {
		c := p[i]

		if c == '\'' {
			if i+1 < len(p) && p[i+1] == '\'' {
				sb.WriteByte('\'')
				i += 2

				continue
			}

			for i++; i < len(p); i++ {
				if p[i] != '\'' {
					sb.WriteByte(p[i])

					continue
				}

				if i+1 < len(p) && p[i+1] == '\'' {
					sb.WriteByte('\'')
					i++

					continue
				}

				break
			}

			i++

			continue
		}

		n := 1
		for i+n < len(p) && p[i+n] == c {
			n++
		}

		sb.WriteString(ldmlField(t, c, n))
		i += n
	}

	return sb.String()
}

// ldmlField formats t for a run of n pattern letters c. A run that is not a
// date field is returned unchanged.
func ldmlField(t time.Time, c byte, n int) string {
	if c == 'S' {
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		if n > len(frac) {
			return frac + strings.Repeat("0", n-len(frac))
		}

		return frac[:n]
	}

	if layout, ok := ldmlLayout(c, n); ok {
		return t.Format(layout)
	}

	return strings.Repeat(string(c), n)
}

// ldmlLayout returns the Go layout of a run of n pattern letters c.
func ldmlLayout(c byte, n int) (string, bool) {
	switch c {
	case 'y':
		if n == 2 {
			return "06", true
		}

		return "2006", true
	case 'M', 'L':
		switch {
		case n >= 4:
			return "January", true
		case n == 3:
			return "Jan", true
		case n == 2:
			return "01", true
		}

		return "1", true
	case 'd':
		if n >= 2 {
			return "02", true
		}

		return "2", true
	case 'E':
		if n >= 4 {
			return "Monday", true
		}

		return "Mon", true
	case 'H':
		return "15", true
	case 'h':
		if n >= 2 {
			return "03", true
		}

		return "3", true
	case 'm':
		if n >= 2 {
			return "04", true
		}

		return "4", true
	case 's':
		if n >= 2 {
			return "05", true
		}

		return "5", true
	case 'a':
		return "PM", true
	case 'Z', 'x':
		if n >= 5 {
			return "-07:00", true
		}

		return "-0700", true
	case 'X':
		if n >= 3 {
			return "Z07:00", true
		}

		return "Z0700", true
	case 'z':
		return "MST", true
	}

	return "", false
}
