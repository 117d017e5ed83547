package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autoenc/internal/seq"
)

func TestBuilder_Build(t *testing.T) {
	builder := NewBuilder(seq.NewFromSeed(42))

	d, err := builder.Build(6, 3, 51, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, d.Len())
	assert.Equal(t, 6, d.NIn)
	assert.Equal(t, 3, d.NOut)
	assert.Equal(t, 51, d.Cardinality)

	for i := 0; i < d.Len(); i++ {
		require.Len(t, d.Source[i], 6)
		require.Len(t, d.DecoderInput[i], 3)
		require.Len(t, d.Target[i], 3)
		for _, vec := range d.Source[i] {
			require.Len(t, vec, 51)
		}
	}
}

func TestBuilder_Build_Alignment(t *testing.T) {
	// The three batches must describe the same sample at the same
	// index: target is the reversed source prefix and the decoder
	// input trails it by one step behind the start marker.
	builder := NewBuilder(seq.NewFromSeed(7))

	d, err := builder.Build(6, 3, 51, 50)
	require.NoError(t, err)

	for i := 0; i < d.Len(); i++ {
		source := d.SourceInts(i)
		target := d.TargetInts(i)
		decoder := d.DecoderInputInts(i)

		wantTarget, wantDecoder, err := seq.Targets(source, d.NOut)
		require.NoError(t, err)

		assert.Equal(t, wantTarget, target, "sample %d target", i)
		assert.Equal(t, wantDecoder, decoder, "sample %d decoder input", i)
		assert.Equal(t, seq.StartMarker, decoder[0], "sample %d start marker", i)
	}
}

func TestBuilder_Build_Determinism(t *testing.T) {
	a, err := NewBuilder(seq.NewFromSeed(1234)).Build(6, 3, 51, 10)
	require.NoError(t, err)
	b, err := NewBuilder(seq.NewFromSeed(1234)).Build(6, 3, 51, 10)
	require.NoError(t, err)

	assert.Equal(t, a.Source, b.Source)
	assert.Equal(t, a.DecoderInput, b.DecoderInput)
	assert.Equal(t, a.Target, b.Target)
}

func TestBuilder_Build_EmptyTargets(t *testing.T) {
	builder := NewBuilder(seq.NewFromSeed(3))

	d, err := builder.Build(4, 0, 5, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	for i := 0; i < d.Len(); i++ {
		assert.Len(t, d.Source[i], 4)
		assert.Empty(t, d.DecoderInput[i])
		assert.Empty(t, d.Target[i])
	}
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name        string
		nIn, nOut   int
		cardinality int
		nSamples    int
		wantErr     error
	}{
		{
			name:        "negative samples",
			nIn:         4,
			nOut:        2,
			cardinality: 5,
			nSamples:    -1,
			wantErr:     ErrSamples,
		},
		{
			name:        "prefix longer than source",
			nIn:         2,
			nOut:        3,
			cardinality: 5,
			nSamples:    1,
			wantErr:     seq.ErrPrefix,
		},
		{
			name:        "cardinality too small",
			nIn:         4,
			nOut:        2,
			cardinality: 1,
			nSamples:    1,
			wantErr:     seq.ErrCardinality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewBuilder(seq.NewFromSeed(1))
			_, err := builder.Build(tt.nIn, tt.nOut, tt.cardinality, tt.nSamples)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilder_Build_ZeroSamples(t *testing.T) {
	builder := NewBuilder(seq.NewFromSeed(1))

	d, err := builder.Build(4, 2, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}
