package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks each line of text at spaces so that no line exceeds
// width display cells. Words longer than width are split.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var out []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(line) {
		wordWidth := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+wordWidth > width {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		for wordWidth > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			if curWidth > 0 {
				out = append(out, cur.String())
				cur.Reset()
				curWidth = 0
			}
			out = append(out, head)
			word = word[len(head):]
			wordWidth = runewidth.StringWidth(word)
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += wordWidth
	}
	if curWidth > 0 {
		out = append(out, cur.String())
	}
	return out
}
