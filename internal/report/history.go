package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/decaesar/internal/model"
)

const historyPreviewWidth = 40

// RenderHistory prints stored analyses.
func RenderHistory(w io.Writer, records []model.AnalysisRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No analyses found.")
		return err
	}
	headers := []string{"ID", "When", "Source", "Shift", "Chi-squared", "Letters", "Text"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		score := fmt.Sprintf("%.4f", rec.ChiSquared)
		if rec.Perfect {
			score += "*"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", rec.ID),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Source,
			fmt.Sprintf("%d", rec.Shift),
			score,
			fmt.Sprintf("%d", rec.Letters),
			Preview(rec.Preview, historyPreviewWidth),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderShiftCounts prints how often each shift was the answer, most frequent first.
func RenderShiftCounts(w io.Writer, counts map[int]int) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "No analyses found.")
		return err
	}
	shifts := make([]int, 0, len(counts))
	for shift := range counts {
		shifts = append(shifts, shift)
	}
	sort.Slice(shifts, func(i, j int) bool {
		if counts[shifts[i]] == counts[shifts[j]] {
			return shifts[i] < shifts[j]
		}
		return counts[shifts[i]] > counts[shifts[j]]
	})
	rows := make([][]string, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, []string{fmt.Sprintf("%d", shift), fmt.Sprintf("%d", counts[shift])})
	}
	for _, line := range formatTable([]string{"Shift", "Count"}, rows, map[int]bool{0: true, 1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
