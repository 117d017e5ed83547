// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package seq2seq provides the public API for the recurrent
// encoder-decoder used by the sequence-to-sequence autoencoder demo.
//
// A single model object carries the whole capability set: Fit trains
// it with teacher forcing, Encode folds a source sequence into a state,
// and DecodeStep advances the decoder one symbol at a time. Training
// and inference share weights through one handle.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model := seq2seq.New(seq2seq.Config{Cardinality: 51, Hidden: 128}, backend)
//	history, _ := seq2seq.Fit(model, batches, seq2seq.FitConfig{Epochs: 30, LR: 0.01}, backend)
//	predicted, _ := seq2seq.Predict(model, batch.SourceSteps, 3, 51, backend)
package seq2seq

import (
	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/autoenc/internal/dataset"
	"github.com/born-ml/autoenc/internal/seq2seq"
)

// Validation errors.
var (
	ErrNoBatches = seq2seq.ErrNoBatches
	ErrEpochs    = seq2seq.ErrEpochs
	ErrNoSource  = seq2seq.ErrNoSource
)

// Config sizes an encoder-decoder.
type Config = seq2seq.Config

// Model is the capability set a sequence-to-sequence network exposes.
type Model[B tensor.Backend] = seq2seq.Model[B]

// EncoderDecoder is a vanilla recurrent encoder-decoder built from
// Born layers.
type EncoderDecoder[B tensor.Backend] = seq2seq.EncoderDecoder[B]

// New creates an encoder-decoder with Xavier-initialized weights.
func New[B tensor.Backend](cfg Config, backend B) *EncoderDecoder[B] {
	return seq2seq.New(cfg, backend)
}

// FitConfig controls training.
type FitConfig = seq2seq.FitConfig

// EpochStats is the per-epoch training record.
type EpochStats = seq2seq.EpochStats

// History is the loss/accuracy record Fit returns.
type History = seq2seq.History

// Fit trains model on the given mini-batches with teacher forcing,
// updating parameters with Adam via the gradient tape.
func Fit[B tensor.Backend](
	model Model[*autodiff.Backend[B]],
	batches []*dataset.SeqBatch[*autodiff.Backend[B]],
	cfg FitConfig,
	backend *autodiff.Backend[B],
) (*History, error) {
	return seq2seq.Fit(model, batches, cfg, backend)
}

// Predict greedily decodes nOut symbols per batch row, starting from
// the start marker and feeding each prediction back in.
func Predict[B tensor.Backend](
	model Model[B],
	srcSteps []*tensor.Tensor[float32, B],
	nOut, cardinality int,
	backend B,
) ([][]int, error) {
	return seq2seq.Predict(model, srcSteps, nOut, cardinality, backend)
}
