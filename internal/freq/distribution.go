// Package freq implements Caesar cipher cryptanalysis by letter-frequency analysis.
package freq

import (
	"errors"
	"fmt"
	"math"
)

// Letters is the size of the alphabet handled by the analyzer.
const Letters = 26

var (
	// ErrDistributionLength is returned when a reference table does not have one entry per letter.
	ErrDistributionLength = errors.New("reference distribution must have 26 entries")
	// ErrInvalidFrequency is returned for negative, NaN or infinite reference values.
	ErrInvalidFrequency = errors.New("reference frequency must be a non-negative number")
)

// Distribution holds the expected percentage frequency (0-100) of each
// letter, index 0 for 'a' through 25 for 'z'.
type Distribution [Letters]float64

// NewDistribution builds a Distribution from exactly 26 values.
func NewDistribution(values []float64) (Distribution, error) {
	var d Distribution
	if len(values) != Letters {
		return d, fmt.Errorf("%w: got %d", ErrDistributionLength, len(values))
	}
	copy(d[:], values)
	if err := d.Validate(); err != nil {
		return Distribution{}, err
	}
	return d, nil
}

// Validate reports the first entry that is negative or not finite.
func (d Distribution) Validate() error {
	for i, v := range d {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q = %v", ErrInvalidFrequency, rune('a'+i), v)
		}
	}
	return nil
}

// Sum returns the total of all percentages. A well-formed table sums to roughly 100.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, v := range d {
		sum += v
	}
	return sum
}

// Uniform returns a distribution with the same weight for every letter.
func Uniform() Distribution {
	var d Distribution
	for i := range d {
		d[i] = 100.0 / Letters
	}
	return d
}
