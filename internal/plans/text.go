package plans

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeNewlines folds \r\n and lone \r into \n, the form plan text takes
// before any header or summary rule looks at it.
func normalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// splitLines breaks text into lines. Besides \n, \r\n and \r it breaks on
// \v, \f, the \x1c-\x1e separators, U+0085, U+2028 and U+2029. A trailing
// break does not produce an empty final line, and empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		next := i + size
		if r == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		start, i = next, next
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace extends unicode.IsSpace with the \x1c-\x1f separators, which plan
// text treats as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
