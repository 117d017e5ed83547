package seq2seq

import (
	"errors"
	"fmt"

	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/autoenc/internal/onehot"
	"github.com/born-ml/autoenc/internal/seq"
)

// ErrNoSource reports a prediction request without source steps.
var ErrNoSource = errors.New("prediction requires at least one source step")

// Predict greedily decodes nOut symbols for every sequence in the
// batch. The source is encoded once; the decoder then runs step by
// step, starting from the one-hot start marker and feeding each
// predicted symbol back in as the next input. Every step's output
// distribution is converted to an integer with the one-hot codec's
// arg-max decode (greedy decoding is invariant under softmax, so the
// raw logits are decoded directly).
//
// If the backend records a gradient tape, recording is suspended for
// the duration of the call.
func Predict[B tensor.Backend](
	model Model[B],
	srcSteps []*tensor.Tensor[float32, B],
	nOut, cardinality int,
	backend B,
) ([][]int, error) {
	if nOut < 0 {
		return nil, fmt.Errorf("n_out %d: %w", nOut, seq.ErrLength)
	}
	if cardinality < 1 {
		return nil, fmt.Errorf("cardinality %d: %w", cardinality, onehot.ErrCardinality)
	}
	if len(srcSteps) == 0 {
		return nil, ErrNoSource
	}

	if taped, ok := any(backend).(interface{ Tape() *autodiff.GradientTape }); ok {
		tape := taped.Tape()
		if tape.IsRecording() {
			tape.StopRecording()
			defer tape.StartRecording()
		}
	}

	batch := srcSteps[0].Shape()[0]
	state := model.Encode(srcSteps)

	predicted := make([][]int, batch)
	for i := range predicted {
		predicted[i] = make([]int, 0, nOut)
	}

	// The decoder starts from the same symbol the teacher-forced
	// inputs start from.
	x, err := symbolTensor(make([]int, batch), seq.StartMarker, cardinality, backend)
	if err != nil {
		return nil, err
	}

	for t := 0; t < nOut; t++ {
		var logits *tensor.Tensor[float32, B]
		logits, state = model.DecodeStep(x, state)

		data := logits.Raw().AsFloat32()
		symbols := make([]int, batch)
		for i := 0; i < batch; i++ {
			symbols[i] = onehot.DecodeOne(data[i*cardinality : (i+1)*cardinality])
			predicted[i] = append(predicted[i], symbols[i])
		}

		if t+1 < nOut {
			x, err = symbolsTensor(symbols, cardinality, backend)
			if err != nil {
				return nil, err
			}
		}
	}

	return predicted, nil
}

// symbolTensor builds a [batch, cardinality] one-hot tensor with every
// row set to the same symbol.
func symbolTensor[B tensor.Backend](rows []int, symbol, cardinality int, backend B) (*tensor.Tensor[float32, B], error) {
	for i := range rows {
		rows[i] = symbol
	}
	return symbolsTensor(rows, cardinality, backend)
}

// symbolsTensor builds a [batch, cardinality] one-hot tensor from one
// symbol per row.
func symbolsTensor[B tensor.Backend](symbols []int, cardinality int, backend B) (*tensor.Tensor[float32, B], error) {
	raw, err := tensor.NewRaw(tensor.Shape{len(symbols), cardinality}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder input tensor: %w", err)
	}
	data := raw.AsFloat32()
	for i, s := range symbols {
		vec, err := onehot.EncodeOne(s, cardinality)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		copy(data[i*cardinality:(i+1)*cardinality], vec)
	}
	return tensor.New[float32, B](raw, backend), nil
}
