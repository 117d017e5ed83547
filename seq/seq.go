// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package seq provides the public API for toy integer-sequence
// generation: uniformly random source sequences over a bounded
// alphabet, reversed-prefix targets and teacher-forcing decoder inputs.
//
// Example:
//
//	gen := seq.NewFromSeed(1)
//	source, _ := gen.Generate(6, 51)
//	target, shifted, _ := seq.Targets(source, 3)
package seq

import (
	"math/rand"

	"github.com/born-ml/autoenc/internal/seq"
)

// StartMarker is the reserved padding/start symbol: it never appears in
// a generated source sequence and always opens a shifted target.
const StartMarker = seq.StartMarker

// Validation errors.
var (
	ErrCardinality = seq.ErrCardinality
	ErrLength      = seq.ErrLength
	ErrPrefix      = seq.ErrPrefix
)

// Generator produces random integer sequences from an explicitly
// injected random source.
type Generator = seq.Generator

// New creates a Generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return seq.New(rng)
}

// NewFromSeed creates a Generator with its own deterministic source.
func NewFromSeed(seed int64) *Generator {
	return seq.NewFromSeed(seed)
}

// Targets derives the reversed-prefix target and the teacher-forcing
// shifted decoder input for a source sequence.
func Targets(source []int, nOut int) (target, shifted []int, err error) {
	return seq.Targets(source, nOut)
}
