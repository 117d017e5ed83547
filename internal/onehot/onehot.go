// Package onehot converts bounded integers to one-hot float32 vectors
// and back. Decoding is plain arg-max, so it also maps a model's soft
// output distribution to the most likely symbol.
package onehot

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	// ErrCardinality reports a non-positive vector length.
	ErrCardinality = errors.New("cardinality must be at least 1")

	// ErrOutOfRange reports a value outside [0, cardinality-1].
	ErrOutOfRange = errors.New("value outside one-hot range")
)

// EncodeOne maps v to a vector of length cardinality with a single 1.0
// at index v.
func EncodeOne(v, cardinality int) ([]float32, error) {
	if cardinality < 1 {
		return nil, fmt.Errorf("cardinality %d: %w", cardinality, ErrCardinality)
	}
	if v < 0 || v >= cardinality {
		return nil, fmt.Errorf("value %d with cardinality %d: %w", v, cardinality, ErrOutOfRange)
	}

	vec := make([]float32, cardinality)
	vec[v] = 1.0
	return vec, nil
}

// Encode maps each integer in values to its one-hot vector.
// The whole input is validated; a single out-of-range value fails the call.
func Encode(values []int, cardinality int) ([][]float32, error) {
	out := make([][]float32, len(values))
	for i, v := range values {
		vec, err := EncodeOne(v, cardinality)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// DecodeOne returns the index of the largest entry, first occurrence
// winning ties. The tie-break carries no semantic weight; it is the
// standard arg-max convention.
//
// DecodeOne is deliberately lossy: applied to a softmax output it
// returns the most likely symbol regardless of the actual distribution.
func DecodeOne(vec []float32) int {
	maxIdx := 0
	for i := 1; i < len(vec); i++ {
		if vec[i] > vec[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// Decode maps each vector to its arg-max index.
// An empty input decodes to an empty sequence.
func Decode(vectors [][]float32) []int {
	out := make([]int, len(vectors))
	for i, vec := range vectors {
		out[i] = DecodeOne(vec)
	}
	return out
}
