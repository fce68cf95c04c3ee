package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/decaesar/internal/freq"
)

const (
	observedMark        = '#'
	expectedMark        = '|'
	minBarWidth         = 10
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	colorObserved       = "\x1b[36m"
	colorExpected       = "\x1b[33m"
)

// profileLabelWidth covers "a  12.70%  12.70% " in front of each bar.
const profileLabelWidth = 19

// RenderProfile draws one bar per letter comparing the observed share in
// text with the reference share. Bars are scaled to the largest value so
// the widest bar spans width cells; width <= 0 uses the terminal width.
func RenderProfile(w io.Writer, text string, ref freq.Distribution, width int, forceColor bool) error {
	counts := freq.Profile(text)
	total := freq.CountLetters(text)

	observed := make([]float64, freq.Letters)
	maxVal := 0.0
	for i := 0; i < freq.Letters; i++ {
		if total > 0 {
			observed[i] = float64(counts[i]) / float64(total) * 100
		}
		maxVal = math.Max(maxVal, math.Max(observed[i], ref[i]))
	}

	if width <= 0 {
		width = terminalWidth() - profileLabelWidth
	}
	if width < minBarWidth {
		width = minBarWidth
	}
	useColor := shouldUseColor(w, forceColor)

	if _, err := fmt.Fprintf(w, "Letter frequencies (%d letters)\n", total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-2s %7s %7s\n", "", "text", "ref"); err != nil {
		return err
	}
	for i := 0; i < freq.Letters; i++ {
		bar := profileBar(observed[i], ref[i], maxVal, width, useColor)
		if _, err := fmt.Fprintf(w, "%c  %6.2f%% %6.2f%% %s\n", 'a'+i, observed[i], ref[i], bar); err != nil {
			return err
		}
	}
	legend := fmt.Sprintf("Legend: %c observed  %c expected", observedMark, expectedMark)
	_, err := fmt.Fprintln(w, legend)
	return err
}

func profileBar(observed, expected, maxVal float64, width int, useColor bool) string {
	if maxVal <= 0 {
		return ""
	}
	filled := scaleCells(observed, maxVal, width)
	marker := scaleCells(expected, maxVal, width)
	if marker >= width {
		marker = width - 1
	}
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
		if i < filled {
			cells[i] = observedMark
		}
	}
	if expected > 0 {
		cells[marker] = expectedMark
	}
	line := strings.TrimRight(string(cells), " ")
	if !useColor {
		return line
	}
	var b strings.Builder
	for _, r := range line {
		switch r {
		case observedMark:
			b.WriteString(colorObserved)
			b.WriteRune(r)
			b.WriteString(colorReset)
		case expectedMark:
			b.WriteString(colorExpected)
			b.WriteRune(r)
			b.WriteString(colorReset)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func scaleCells(v, maxVal float64, width int) int {
	n := int(math.Round(v / maxVal * float64(width)))
	if n < 0 {
		return 0
	}
	if n > width {
		return width
	}
	return n
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
