package freq

import (
	"math"
	"sort"
)

// MaxShift is the largest rotation the search tries.
const MaxShift = Letters - 1

// Options tunes the shift search.
type Options struct {
	// IncludeIdentity also scores the unshifted text (shift 0) before
	// shifts 1..25. Off by default, so text that is already plain is
	// still reported as some shifted rotation.
	IncludeIdentity bool
}

// Candidate is one rotation of the ciphertext and its score.
type Candidate struct {
	Shift      int
	Text       string
	ChiSquared float64
}

// Result is the best-fitting rotation found by Analyze.
type Result struct {
	Candidate
	// Letters is the number of letters the statistic was computed over.
	Letters int
	// Perfect is set when the best score is exactly zero and the search stopped early.
	Perfect bool
}

// Contribution is the chi-squared term for one letter. Letters that do not
// occur contribute nothing, which keeps the division by the observed count safe.
func Contribution(actual, nrLetters int, percent float64) float64 {
	if actual == 0 {
		return 0
	}
	expected := float64(nrLetters) * percent / 100
	diff := expected - float64(actual)
	return diff * diff / float64(actual)
}

// ChiSquared scores how far the letter profile of text is from ref. Lower is closer.
func ChiSquared(text string, ref Distribution) float64 {
	return chiSquared(Profile(text), CountLetters(text), ref)
}

func chiSquared(counts [Letters]int, nrLetters int, ref Distribution) float64 {
	var sum float64
	for p := 0; p < Letters; p++ {
		sum += Contribution(counts[p], nrLetters, ref[p])
	}
	return sum
}

// Analyze finds the rotation of ciphertext whose letter frequencies best
// match ref, trying shifts 1 through 25.
func Analyze(ciphertext string, ref Distribution) (Result, error) {
	return AnalyzeWithOptions(ciphertext, ref, Options{})
}

// AnalyzeWithOptions is Analyze with a configurable search.
func AnalyzeWithOptions(ciphertext string, ref Distribution, opts Options) (Result, error) {
	if err := ref.Validate(); err != nil {
		return Result{}, err
	}
	nrLetters := CountLetters(ciphertext)
	best := Result{
		Candidate: Candidate{ChiSquared: math.Inf(1)},
		Letters:   nrLetters,
	}

	consider := func(shift int, text string) bool {
		score := chiSquared(Profile(text), nrLetters, ref)
		if score < best.ChiSquared {
			best.Candidate = Candidate{Shift: shift, Text: text, ChiSquared: score}
		}
		best.Perfect = best.ChiSquared == 0
		return best.Perfect
	}

	if opts.IncludeIdentity && consider(0, ciphertext) {
		return best, nil
	}
	candidate := ciphertext
	for shift := 1; shift <= MaxShift; shift++ {
		candidate = ShiftOnce(candidate)
		if consider(shift, candidate) {
			break
		}
	}
	return best, nil
}

// Rank scores every rotation 0..25 independently and orders them from best
// to worst. Equal scores keep the smaller shift first.
func Rank(ciphertext string, ref Distribution) ([]Candidate, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	nrLetters := CountLetters(ciphertext)
	out := make([]Candidate, 0, Letters)
	for shift := 0; shift < Letters; shift++ {
		text := Shift(ciphertext, shift)
		out = append(out, Candidate{
			Shift:      shift,
			Text:       text,
			ChiSquared: chiSquared(Profile(text), nrLetters, ref),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChiSquared < out[j].ChiSquared
	})
	return out, nil
}
