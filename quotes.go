package md2docx

import (
	"strings"
	"unicode"
)

// CJK quote glyphs emitted by the converter.
const (
	openDoubleQuote  = '“' // “
	closeDoubleQuote = '”' // ”
	openSingleQuote  = '‘' // ‘
	closeSingleQuote = '’' // ’
)

// convertQuotes replaces straight quotes with CJK quote glyphs using
// an alternating state machine: the Nth straight double quote toggles
// between opening and closing glyphs, and single quotes alternate
// independently. Two exemptions: an apostrophe flanked by letters on
// both sides passes through unchanged, and text inside backtick runs
// is left untouched. Already-converted glyph quotes are not straight
// quotes, so running the converter twice is a no-op.
func convertQuotes(text string) string {
	if !strings.ContainsAny(text, `"'`) {
		return text
	}

	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text))

	inCode := false
	doubleOpen := false // false: next " opens; true: next " closes
	singleOpen := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		// A run of backticks toggles the code exemption.
		if ch == '`' {
			j := i
			for j < len(runes) && runes[j] == '`' {
				sb.WriteRune('`')
				j++
			}
			inCode = !inCode
			i = j - 1
			continue
		}
		if inCode {
			sb.WriteRune(ch)
			continue
		}

		switch ch {
		case '"':
			if doubleOpen {
				sb.WriteRune(closeDoubleQuote)
			} else {
				sb.WriteRune(openDoubleQuote)
			}
			doubleOpen = !doubleOpen
		case '\'':
			prevLetter := i > 0 && unicode.IsLetter(runes[i-1])
			nextLetter := i+1 < len(runes) && unicode.IsLetter(runes[i+1])
			if prevLetter && nextLetter {
				sb.WriteRune('\'')
				continue
			}
			if singleOpen {
				sb.WriteRune(closeSingleQuote)
			} else {
				sb.WriteRune(openSingleQuote)
			}
			singleOpen = !singleOpen
		default:
			sb.WriteRune(ch)
		}
	}

	return sb.String()
}
