// Package cipher produces Caesar ciphertext for practice and testing.
package cipher

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/decaesar/internal/freq"
)

// Encrypt shifts every letter of text k positions forward.
func Encrypt(text string, k int) string {
	return freq.Shift(text, -k)
}

// Decrypt shifts every letter of text k positions back.
func Decrypt(text string, k int) string {
	return freq.Shift(text, k)
}

// Generator picks random keys.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// RandomShift returns a key in 1..25; zero would leave the text unchanged.
func (g *Generator) RandomShift() int {
	return 1 + g.rnd.Intn(freq.MaxShift)
}
