package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text is the plain-text formatter: greedy word wrap.
type Text struct{}

func (Text) Format(source string, width int) (string, bool) {
	return Wrap(source, width), true
}

// Wrap breaks text into lines no wider than width where possible. Words are
// separated by single spaces within a line and by newlines between lines; a
// word wider than width gets a line of its own. Widths are display cells.
func Wrap(text string, width int) string {
	var sb strings.Builder
	lineWidth := 0
	for i, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		switch {
		case i == 0:
		case lineWidth+1+w <= width:
			sb.WriteByte(' ')
			lineWidth++
		default:
			sb.WriteByte('\n')
			lineWidth = 0
		}
		sb.WriteString(word)
		lineWidth += w
	}
	return sb.String()
}
