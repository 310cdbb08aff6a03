package lang

import (
	"strings"
	"unicode"
)

// TrimMarker deletes itself and all contiguous white space on both sides.
const TrimMarker = "{-}"

// trimMarkers applies every [TrimMarker] in text.
func trimMarkers(text string) string {
	i := strings.Index(text, TrimMarker)
	if i < 0 {
		return text
	}

	var sb strings.Builder

	sb.Grow(len(text))

	for i >= 0 {
		sb.WriteString(strings.TrimRightFunc(text[:i], unicode.IsSpace))

		text = strings.TrimLeftFunc(text[i+len(TrimMarker):], unicode.IsSpace)

		i = strings.Index(text, TrimMarker)
	}

	sb.WriteString(text)

	return sb.String()
}
