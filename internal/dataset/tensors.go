package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/born-ml/born/tensor"

	"github.com/born-ml/autoenc/internal/onehot"
)

// ErrBatchSize reports a non-positive mini-batch size.
var ErrBatchSize = errors.New("batch size must be positive")

// ErrMismatch reports input/target batches of different lengths.
var ErrMismatch = errors.New("inputs and targets length mismatch")

// SeqBatch is one mini-batch of a sequence Dataset in the per-timestep
// layout the recurrent model consumes: step t of the encoder input is a
// [size, cardinality] tensor, and step t of the decoder target is a
// [size] tensor of class indices for the cross-entropy loss.
type SeqBatch[B tensor.Backend] struct {
	SourceSteps  []*tensor.Tensor[float32, B] // nIn tensors of [size, cardinality]
	DecoderSteps []*tensor.Tensor[float32, B] // nOut tensors of [size, cardinality]
	TargetSteps  []*tensor.Tensor[int32, B]   // nOut tensors of [size]
	Size         int
}

// SeqBatches splits d into mini-batches of Born tensors. Sample order
// is preserved; the last batch may be smaller when the dataset does not
// divide evenly.
func SeqBatches[B tensor.Backend](d *Dataset, batchSize int, backend B) ([]*SeqBatch[B], error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size %d: %w", batchSize, ErrBatchSize)
	}

	n := d.Len()
	numBatches := (n + batchSize - 1) / batchSize
	batches := make([]*SeqBatch[B], 0, numBatches)

	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		size := end - start

		b := &SeqBatch[B]{
			SourceSteps:  make([]*tensor.Tensor[float32, B], d.NIn),
			DecoderSteps: make([]*tensor.Tensor[float32, B], d.NOut),
			TargetSteps:  make([]*tensor.Tensor[int32, B], d.NOut),
			Size:         size,
		}

		for t := 0; t < d.NIn; t++ {
			step, err := stepTensor(d.Source, start, end, t, d.Cardinality, backend)
			if err != nil {
				return nil, fmt.Errorf("source step %d: %w", t, err)
			}
			b.SourceSteps[t] = step
		}
		for t := 0; t < d.NOut; t++ {
			step, err := stepTensor(d.DecoderInput, start, end, t, d.Cardinality, backend)
			if err != nil {
				return nil, fmt.Errorf("decoder step %d: %w", t, err)
			}
			b.DecoderSteps[t] = step

			labels, err := tensor.NewRaw(tensor.Shape{size}, tensor.Int32, backend.Device())
			if err != nil {
				return nil, fmt.Errorf("target step %d: %w", t, err)
			}
			data := labels.AsInt32()
			for i := start; i < end; i++ {
				data[i-start] = int32(onehot.DecodeOne(d.Target[i][t]))
			}
			b.TargetSteps[t] = tensor.New[int32, B](labels, backend)
		}

		batches = append(batches, b)
	}

	return batches, nil
}

// stepTensor packs timestep t of samples [start, end) into a
// [end-start, cardinality] tensor.
func stepTensor[B tensor.Backend](
	samples [][][]float32,
	start, end, t, cardinality int,
	backend B,
) (*tensor.Tensor[float32, B], error) {
	size := end - start
	raw, err := tensor.NewRaw(tensor.Shape{size, cardinality}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for i := start; i < end; i++ {
		copy(data[(i-start)*cardinality:(i-start+1)*cardinality], samples[i][t])
	}
	return tensor.New[float32, B](raw, backend), nil
}

// Tensors packs a whole Dataset into three aligned 3-D tensors of
// shapes [n, nIn, cardinality], [n, nOut, cardinality] and
// [n, nOut, cardinality] respectively (batch, timesteps, cardinality).
func Tensors[B tensor.Backend](d *Dataset, backend B) (source, decoderInput, target *tensor.Tensor[float32, B], err error) {
	source, err = packTensor(d.Source, d.NIn, d.Cardinality, backend)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("source: %w", err)
	}
	decoderInput, err = packTensor(d.DecoderInput, d.NOut, d.Cardinality, backend)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoder input: %w", err)
	}
	target, err = packTensor(d.Target, d.NOut, d.Cardinality, backend)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("target: %w", err)
	}
	return source, decoderInput, target, nil
}

func packTensor[B tensor.Backend](
	samples [][][]float32,
	steps, cardinality int,
	backend B,
) (*tensor.Tensor[float32, B], error) {
	n := len(samples)
	raw, err := tensor.NewRaw(tensor.Shape{n, steps, cardinality}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for i, sample := range samples {
		for t := 0; t < steps; t++ {
			base := (i*steps + t) * cardinality
			copy(data[base:base+cardinality], sample[t])
		}
	}
	return tensor.New[float32, B](raw, backend), nil
}

// VecBatch is one mini-batch for reconstruction training: input and
// target are [size, width] tensors. For a plain autoencoder they hold
// the same values; for a denoising autoencoder the input is corrupted.
type VecBatch[B tensor.Backend] struct {
	Input  *tensor.Tensor[float32, B]
	Target *tensor.Tensor[float32, B]
	Size   int
}

// VectorBatches splits aligned (input, target) vector sets into
// mini-batch tensors. When rng is non-nil the sample order is shuffled
// with a Fisher-Yates pass first; input/target alignment is preserved
// either way.
func VectorBatches[B tensor.Backend](
	inputs, targets [][]float32,
	batchSize int,
	rng *rand.Rand,
	backend B,
) ([]*VecBatch[B], error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("%d inputs, %d targets: %w", len(inputs), len(targets), ErrMismatch)
	}
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size %d: %w", batchSize, ErrBatchSize)
	}

	n := len(inputs)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if rng != nil {
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	batches := make([]*VecBatch[B], 0, (n+batchSize-1)/batchSize)
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		size := end - start
		width := len(inputs[indices[start]])

		inRaw, err := tensor.NewRaw(tensor.Shape{size, width}, tensor.Float32, backend.Device())
		if err != nil {
			return nil, fmt.Errorf("failed to create input tensor: %w", err)
		}
		tgtRaw, err := tensor.NewRaw(tensor.Shape{size, width}, tensor.Float32, backend.Device())
		if err != nil {
			return nil, fmt.Errorf("failed to create target tensor: %w", err)
		}

		inData := inRaw.AsFloat32()
		tgtData := tgtRaw.AsFloat32()
		for i := start; i < end; i++ {
			idx := indices[i]
			copy(inData[(i-start)*width:(i-start+1)*width], inputs[idx])
			copy(tgtData[(i-start)*width:(i-start+1)*width], targets[idx])
		}

		batches = append(batches, &VecBatch[B]{
			Input:  tensor.New[float32, B](inRaw, backend),
			Target: tensor.New[float32, B](tgtRaw, backend),
			Size:   size,
		})
	}

	return batches, nil
}
