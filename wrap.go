package text2img

import "strings"

// Line is an ordered run of whole words rendered on one row of a page.
type Line struct {
	Words []string
}

// Text returns the words joined by single spaces.
func (l Line) Text() string {
	return strings.Join(l.Words, " ")
}

// Len returns the number of words on the line.
func (l Line) Len() int {
	return len(l.Words)
}

// MeasureFunc returns the rendered pixel width of text.
type MeasureFunc func(text string) int

// WrapLines greedily packs words into lines no wider than maxWidth.
// A word is never split: a word wider than maxWidth occupies a line alone.
// Each returned line shares its backing array with words.
func WrapLines(words []string, maxWidth int, measure MeasureFunc) []Line {
	if len(words) == 0 {
		return nil
	}

	var lines []Line
	start := 0
	current := words[0]

	for i := 1; i < len(words); i++ {
		candidate := current + " " + words[i]
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, Line{Words: words[start:i:i]})
		start = i
		current = words[i]
	}

	return append(lines, Line{Words: words[start:len(words):len(words)]})
}

// CountWords returns the total number of words across lines.
func CountWords(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Len()
	}
	return n
}

// JoinLines joins the text of lines with single spaces.
func JoinLines(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, " ")
}
