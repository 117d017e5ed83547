// Package dataset assembles the toy training sets for the autoencoder
// demos: aligned one-hot sequence triples for the sequence-to-sequence
// task, synthetic sine windows for the dense autoencoder, and Gaussian
// corruption plus mini-batch tensor bridging shared by all of them.
package dataset

import (
	"errors"
	"fmt"

	"github.com/born-ml/autoenc/internal/onehot"
	"github.com/born-ml/autoenc/internal/seq"
)

// ErrSamples reports a negative sample count.
var ErrSamples = errors.New("sample count must be non-negative")

// Dataset is three parallel one-hot batches aligned by sample index:
// the encoder input, the teacher-forced decoder input, and the decoder
// target. Element [i][t] is the one-hot vector for timestep t of
// sample i.
//
// Datasets are ephemeral: generated fresh per training or evaluation
// call, never persisted.
type Dataset struct {
	NIn         int
	NOut        int
	Cardinality int

	Source       [][][]float32 // [n][nIn][cardinality]
	DecoderInput [][][]float32 // [n][nOut][cardinality]
	Target       [][][]float32 // [n][nOut][cardinality]
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Source)
}

// SourceInts decodes sample i's source sequence back to integers.
func (d *Dataset) SourceInts(i int) []int {
	return onehot.Decode(d.Source[i])
}

// TargetInts decodes sample i's target sequence back to integers.
func (d *Dataset) TargetInts(i int) []int {
	return onehot.Decode(d.Target[i])
}

// DecoderInputInts decodes sample i's decoder input sequence back to
// integers. Its first element is always seq.StartMarker.
func (d *Dataset) DecoderInputInts(i int) []int {
	return onehot.Decode(d.DecoderInput[i])
}

// Builder composes a sequence generator and the one-hot codec into
// supervised training sets. Deterministic exactly when the generator is.
type Builder struct {
	gen *seq.Generator
}

// NewBuilder creates a Builder drawing sequences from gen.
func NewBuilder(gen *seq.Generator) *Builder {
	return &Builder{gen: gen}
}

// Build produces nSamples independent (source, decoder input, target)
// triples. For each sample:
//
//  1. source = nIn uniform integers in [1, cardinality-1]
//  2. target = reverse(source[:nOut]), decoder input = target shifted
//     one step right behind the start marker
//  3. all three are one-hot encoded with the given cardinality
//
// Sample order is preserved: index i in each batch refers to the same
// underlying sample. Arguments are validated eagerly.
func (b *Builder) Build(nIn, nOut, cardinality, nSamples int) (*Dataset, error) {
	if nSamples < 0 {
		return nil, fmt.Errorf("samples %d: %w", nSamples, ErrSamples)
	}
	if nOut > nIn {
		return nil, fmt.Errorf("n_out %d > n_in %d: %w", nOut, nIn, seq.ErrPrefix)
	}

	d := &Dataset{
		NIn:          nIn,
		NOut:         nOut,
		Cardinality:  cardinality,
		Source:       make([][][]float32, 0, nSamples),
		DecoderInput: make([][][]float32, 0, nSamples),
		Target:       make([][][]float32, 0, nSamples),
	}

	for i := 0; i < nSamples; i++ {
		source, err := b.gen.Generate(nIn, cardinality)
		if err != nil {
			return nil, err
		}
		target, shifted, err := seq.Targets(source, nOut)
		if err != nil {
			return nil, err
		}

		srcEnc, err := onehot.Encode(source, cardinality)
		if err != nil {
			return nil, fmt.Errorf("sample %d source: %w", i, err)
		}
		shiftEnc, err := onehot.Encode(shifted, cardinality)
		if err != nil {
			return nil, fmt.Errorf("sample %d decoder input: %w", i, err)
		}
		tgtEnc, err := onehot.Encode(target, cardinality)
		if err != nil {
			return nil, fmt.Errorf("sample %d target: %w", i, err)
		}

		d.Source = append(d.Source, srcEnc)
		d.DecoderInput = append(d.DecoderInput, shiftEnc)
		d.Target = append(d.Target, tgtEnc)
	}

	return d, nil
}
