package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/decaesar/internal/freq"
	"github.com/verte-zerg/decaesar/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Rank", "Shift", "Text"}
	rows := [][]string{
		{"1", "5", "hello"},
		{"10", "21", "世界"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Rank Shift Text" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "   1     5 hello" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "  10    21 世界" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("a\n b\tc", 0); got != "a b c" {
		t.Fatalf("unexpected flattened preview: %q", got)
	}
	if got := Preview("abcdefghij", 6); got != "abc..." {
		t.Fatalf("unexpected truncated preview: %q", got)
	}
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	res := freq.Result{
		Candidate: freq.Candidate{Shift: 5, Text: "attack at dawn", ChiSquared: 1.25},
		Letters:   12,
	}
	if err := RenderResult(&buf, res); err != nil {
		t.Fatalf("RenderResult failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Shift: 5", "Chi-squared: 1.2500 (best available)", "Letters: 12", "attack at dawn"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}

	buf.Reset()
	res.Perfect = true
	if err := RenderResult(&buf, res); err != nil {
		t.Fatalf("RenderResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(perfect)") {
		t.Fatalf("expected perfect marker: %s", buf.String())
	}
}

func TestRenderCandidatesLimit(t *testing.T) {
	ranked, err := freq.Rank(freq.Shift("the quick brown fox jumps over the lazy dog", -5), freq.Uniform())
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderCandidates(&buf, ranked, 3); err != nil {
		t.Fatalf("RenderCandidates failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Rank") {
		t.Fatalf("expected header first: %q", lines[0])
	}
}

func TestRenderProfile(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProfile(&buf, "aab", freq.Uniform(), 20, false); err != nil {
		t.Fatalf("RenderProfile failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2+freq.Letters+1 {
		t.Fatalf("expected %d lines, got %d", 2+freq.Letters+1, len(lines))
	}
	if !strings.Contains(out, "(3 letters)") {
		t.Fatalf("expected letter count in output: %s", out)
	}
	aLine := lines[2]
	if aLine != "a   66.67%   3.85% #|"+strings.Repeat("#", 18) {
		t.Fatalf("unexpected line for a: %q", aLine)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes")
	}
}

func TestProfileBarMarksExpected(t *testing.T) {
	if got := profileBar(0, 50, 100, 10, false); got != "     |" {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := profileBar(100, 0, 100, 10, false); got != "##########" {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := profileBar(0, 0, 0, 10, false); got != "" {
		t.Fatalf("expected empty bar, got %q", got)
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No analyses found." {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}

	buf.Reset()
	records := []model.AnalysisRecord{
		{ID: 1, CreatedAt: time.Now(), Source: model.SourceKeyboard, Shift: 3, ChiSquared: 0, Perfect: true, Letters: 0, Preview: ""},
		{ID: 2, CreatedAt: time.Now(), Source: model.SourceFile + "msg.txt", Shift: 5, ChiSquared: 16.9212, Letters: 35, Preview: "the quick brown fox"},
	}
	if err := RenderHistory(&buf, records); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Source", "keyboard", "file:msg.txt", "0.0000*", "16.9212", "the quick brown fox"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestRenderShiftCounts(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderShiftCounts(&buf, map[int]int{3: 1, 7: 4, 1: 1}); err != nil {
		t.Fatalf("RenderShiftCounts failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[1] != "    7     4" || lines[2] != "    1     1" || lines[3] != "    3     1" {
		t.Fatalf("unexpected order: %q", lines)
	}
}

func TestRenderDistribution(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDistribution(&buf, freq.Uniform()); err != nil {
		t.Fatalf("RenderDistribution failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != freq.Letters+2 {
		t.Fatalf("expected %d lines, got %d", freq.Letters+2, len(lines))
	}
	if lines[1] != "a        3.846" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if lines[len(lines)-1] != "sum    100.000" {
		t.Fatalf("unexpected total row: %q", lines[len(lines)-1])
	}
}
