// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onehot provides the public API for the one-hot codec:
// bounded integers to one-hot float32 vectors and back.
//
// Decode is arg-max with first-occurrence tie-break, so it also maps a
// model's softmax output to the most likely symbol:
//
//	vecs, _ := onehot.Encode([]int{3, 1, 4}, 5)
//	ints := onehot.Decode(vecs) // [3 1 4]
package onehot

import (
	"github.com/born-ml/autoenc/internal/onehot"
)

// Validation errors.
var (
	ErrCardinality = onehot.ErrCardinality
	ErrOutOfRange  = onehot.ErrOutOfRange
)

// EncodeOne maps v to a one-hot vector of length cardinality.
func EncodeOne(v, cardinality int) ([]float32, error) {
	return onehot.EncodeOne(v, cardinality)
}

// Encode maps each integer in values to its one-hot vector.
func Encode(values []int, cardinality int) ([][]float32, error) {
	return onehot.Encode(values, cardinality)
}

// DecodeOne returns the arg-max index of vec, first occurrence winning
// ties.
func DecodeOne(vec []float32) int {
	return onehot.DecodeOne(vec)
}

// Decode maps each vector to its arg-max index; an empty input decodes
// to an empty sequence.
func Decode(vectors [][]float32) []int {
	return onehot.Decode(vectors)
}
