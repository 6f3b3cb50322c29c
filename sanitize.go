package text2img

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// maxRenderableRune is the last code point kept by Sanitize (7-bit ASCII).
const maxRenderableRune = 0x7F

// nonASCII matches every rune the rasterizer is not expected to support.
// Invalid UTF-8 bytes decode as utf8.RuneError and are dropped too.
var nonASCII = runes.Predicate(func(r rune) bool {
	return r > maxRenderableRune || r == utf8.RuneError
})

// Sanitize removes every character outside the 7-bit ASCII range.
// Removed runs are replaced with nothing, so words on either side may merge.
func Sanitize(text string) string {
	// Fast path: most corpus text is already plain ASCII.
	if isASCII(text) {
		return text
	}
	out, _, _ := transform.String(runes.Remove(nonASCII), text)
	return out
}

// Words returns the whitespace-delimited words of the sanitized text.
// The ASCII separators 0x1C to 0x1F count as whitespace.
func Words(text string) []string {
	return strings.FieldsFunc(Sanitize(text), isWordSeparator)
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > maxRenderableRune {
			return false
		}
	}
	return true
}
