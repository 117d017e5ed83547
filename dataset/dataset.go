// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the public API for building the toy
// training sets of the autoencoder demos and bridging them into Born
// tensors: aligned one-hot sequence triples for sequence-to-sequence
// training, synthetic sine windows, Gaussian corruption and mini-batch
// assembly.
//
// Example:
//
//	gen := seq.NewFromSeed(1)
//	ds, _ := dataset.NewBuilder(gen).Build(6, 3, 51, 1000)
//	batches, _ := dataset.SeqBatches(ds, 32, backend)
package dataset

import (
	"math/rand"

	"github.com/born-ml/born/tensor"

	"github.com/born-ml/autoenc/internal/dataset"
	"github.com/born-ml/autoenc/seq"
)

// Validation errors.
var (
	ErrSamples   = dataset.ErrSamples
	ErrBatchSize = dataset.ErrBatchSize
	ErrMismatch  = dataset.ErrMismatch
)

// Dataset is three parallel one-hot batches aligned by sample index:
// encoder input, teacher-forced decoder input and decoder target.
type Dataset = dataset.Dataset

// Builder composes a sequence generator and the one-hot codec into
// supervised training sets.
type Builder = dataset.Builder

// NewBuilder creates a Builder drawing sequences from gen.
func NewBuilder(gen *seq.Generator) *Builder {
	return dataset.NewBuilder(gen)
}

// SeqBatch is one mini-batch of a sequence Dataset in per-timestep
// tensor layout.
type SeqBatch[B tensor.Backend] = dataset.SeqBatch[B]

// SeqBatches splits a Dataset into mini-batches of Born tensors.
func SeqBatches[B tensor.Backend](d *Dataset, batchSize int, backend B) ([]*SeqBatch[B], error) {
	return dataset.SeqBatches(d, batchSize, backend)
}

// Tensors packs a whole Dataset into three aligned 3-D tensors of
// shape (batch, timesteps, cardinality).
func Tensors[B tensor.Backend](d *Dataset, backend B) (source, decoderInput, target *tensor.Tensor[float32, B], err error) {
	return dataset.Tensors(d, backend)
}

// VecBatch is one mini-batch for reconstruction training.
type VecBatch[B tensor.Backend] = dataset.VecBatch[B]

// VectorBatches splits aligned (input, target) vector sets into
// mini-batch tensors, optionally shuffling with rng.
func VectorBatches[B tensor.Backend](
	inputs, targets [][]float32,
	batchSize int,
	rng *rand.Rand,
	backend B,
) ([]*VecBatch[B], error) {
	return dataset.VectorBatches(inputs, targets, batchSize, rng, backend)
}

// SineWindows generates n sine-wave windows of the given width,
// rescaled to [0, 1].
func SineWindows(rng *rand.Rand, n, width int) ([][]float32, error) {
	return dataset.SineWindows(rng, n, width)
}

// Corrupt returns a copy of data with additive Gaussian noise clamped
// to [0, 1].
func Corrupt(rng *rand.Rand, data [][]float32, stddev float32) [][]float32 {
	return dataset.Corrupt(rng, data, stddev)
}
