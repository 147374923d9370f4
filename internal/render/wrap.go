package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap breaks text into lines no wider than width, keeping words whole.
// Explicit newlines are preserved and a word wider than the limit gets a
// line of its own. A width of zero or less returns the text unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, paragraph := range paragraphs {
		paragraphs[i] = wrapLine(paragraph, width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapLine(line string, width int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}
	var b strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		switch {
		case lineWidth == 0:
		case lineWidth+1+wordWidth > width:
			b.WriteByte('\n')
			lineWidth = 0
		default:
			b.WriteByte(' ')
			lineWidth++
		}
		b.WriteString(word)
		lineWidth += wordWidth
	}
	return b.String()
}
