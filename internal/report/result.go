package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/decaesar/internal/freq"
)

const candidatePreviewWidth = 48

// RenderResult prints the winning shift, its score and the decrypted text.
func RenderResult(w io.Writer, res freq.Result) error {
	match := "best available"
	if res.Perfect {
		match = "perfect"
	}
	if _, err := fmt.Fprintf(w, "Shift: %d\n", res.Shift); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Chi-squared: %.4f (%s)\n", res.ChiSquared, match); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Letters: %d\n", res.Letters); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, res.Text)
	return err
}

// RenderCandidates prints ranked rotations as a table. A limit of zero prints all of them.
func RenderCandidates(w io.Writer, candidates []freq.Candidate, limit int) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No candidates.")
		return err
	}
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	headers := []string{"Rank", "Shift", "Chi-squared", "Text"}
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", c.Shift),
			fmt.Sprintf("%.4f", c.ChiSquared),
			Preview(c.Text, candidatePreviewWidth),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDistribution prints a reference table, one letter per row, followed by its total.
func RenderDistribution(w io.Writer, ref freq.Distribution) error {
	rows := make([][]string, 0, freq.Letters+1)
	for i, p := range ref {
		rows = append(rows, []string{string(rune('a' + i)), fmt.Sprintf("%.3f", p)})
	}
	rows = append(rows, []string{"sum", fmt.Sprintf("%.3f", ref.Sum())})
	for _, line := range formatTable([]string{"Letter", "Percent"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
