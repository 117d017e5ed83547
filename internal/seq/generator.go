// Package seq produces the toy integer sequences used by the
// sequence-to-sequence autoencoder demos: uniformly random source
// sequences over a bounded alphabet, reversed-prefix target sequences,
// and the one-step-shifted decoder inputs used for teacher forcing.
package seq

import (
	"errors"
	"fmt"
	"math/rand"
)

// StartMarker is the reserved padding/start symbol. It never appears in
// a generated source sequence and always opens a shifted target sequence.
const StartMarker = 0

// Validation errors. All conditions are detected eagerly and never retried.
var (
	// ErrCardinality reports an alphabet too small to generate from.
	// With the 0 marker reserved, at least two symbols are required.
	ErrCardinality = errors.New("cardinality must be at least 2")

	// ErrLength reports a negative sequence length.
	ErrLength = errors.New("length must be non-negative")

	// ErrPrefix reports a target prefix longer than its source sequence.
	ErrPrefix = errors.New("prefix length exceeds source length")
)

// Generator produces random integer sequences from an explicitly
// injected random source, so callers (and tests) control determinism.
// A Generator retains no other state between calls.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		panic("seq: nil *rand.Rand")
	}
	return &Generator{rng: rng}
}

// NewFromSeed creates a Generator with its own deterministic source.
//
// Two generators built from the same seed produce identical sequences.
func NewFromSeed(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed))) //nolint:gosec // G404: toy data generation, determinism wanted
}

// Generate returns length independent uniform integers in [1, cardinality-1].
//
// The value 0 is reserved as the start/padding marker and is never produced.
func (g *Generator) Generate(length, cardinality int) ([]int, error) {
	if cardinality < 2 {
		return nil, fmt.Errorf("cardinality %d: %w", cardinality, ErrCardinality)
	}
	if length < 0 {
		return nil, fmt.Errorf("length %d: %w", length, ErrLength)
	}

	out := make([]int, length)
	for i := range out {
		out[i] = 1 + g.rng.Intn(cardinality-1)
	}
	return out, nil
}

// Targets derives the supervised pair for a source sequence:
//
//	target  = reverse(source[:nOut])
//	shifted = [StartMarker] + target[:nOut-1]
//
// The shifted sequence is the decoder input under teacher forcing: at
// step t the decoder sees the true symbol emitted at step t-1.
// Both results have length nOut; nOut == 0 yields empty sequences.
func Targets(source []int, nOut int) (target, shifted []int, err error) {
	if nOut < 0 {
		return nil, nil, fmt.Errorf("prefix length %d: %w", nOut, ErrLength)
	}
	if nOut > len(source) {
		return nil, nil, fmt.Errorf("prefix length %d > source length %d: %w", nOut, len(source), ErrPrefix)
	}

	target = make([]int, nOut)
	for i := 0; i < nOut; i++ {
		target[i] = source[nOut-1-i]
	}

	shifted = make([]int, nOut)
	if nOut > 0 {
		shifted[0] = StartMarker
		copy(shifted[1:], target[:nOut-1])
	}
	return target, shifted, nil
}
