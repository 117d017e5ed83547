package seq2seq

import (
	"errors"
	"fmt"

	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/optim"
	"github.com/born-ml/born/tensor"

	"github.com/born-ml/autoenc/internal/dataset"
	"github.com/born-ml/autoenc/internal/onehot"
)

// Training validation errors.
var (
	ErrNoBatches = errors.New("no training batches")
	ErrEpochs    = errors.New("epochs must be positive")
)

// FitConfig controls training.
type FitConfig struct {
	Epochs int
	// LR is the Adam learning rate; 0 selects 0.001.
	LR float32
}

// EpochStats is the per-epoch training record.
type EpochStats struct {
	// Loss is the mean per-step cross entropy over the epoch.
	Loss float32
	// Accuracy is the fraction of sequences reproduced exactly under
	// teacher forcing.
	Accuracy float32
}

// History is the loss/accuracy record Fit returns, one entry per epoch.
type History struct {
	Epochs []EpochStats
}

// Final returns the last epoch's stats.
func (h *History) Final() EpochStats {
	return h.Epochs[len(h.Epochs)-1]
}

// Fit trains model on the given mini-batches with teacher forcing.
//
// Each decoder step contributes a cross-entropy term recorded on the
// gradient tape; the terms are summed on-tape and the backward pass is
// seeded with a scalar one, so a single tape walk yields the gradients
// for every step of every layer. Parameters are updated with Adam.
//
// Batches are consumed in the given order each epoch; shuffle at batch
// construction time if desired.
func Fit[B tensor.Backend](
	model Model[*autodiff.Backend[B]],
	batches []*dataset.SeqBatch[*autodiff.Backend[B]],
	cfg FitConfig,
	backend *autodiff.Backend[B],
) (*History, error) {
	if len(batches) == 0 {
		return nil, ErrNoBatches
	}
	if cfg.Epochs < 1 {
		return nil, fmt.Errorf("epochs %d: %w", cfg.Epochs, ErrEpochs)
	}
	lr := cfg.LR
	if lr == 0 {
		lr = 0.001
	}

	optimizer := optim.NewAdam(
		model.Parameters(),
		optim.AdamConfig{
			LR:    lr,
			Betas: [2]float32{0.9, 0.999},
			Eps:   1e-8,
		},
		backend,
	)

	backend.Tape().StartRecording()
	defer backend.Tape().StopRecording()

	history := &History{Epochs: make([]EpochStats, 0, cfg.Epochs)}
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		var (
			totalLoss    float32
			lossSteps    int
			totalCorrect int
			totalSamples int
		)

		for _, batch := range batches {
			optimizer.ZeroGrad()

			h := model.Encode(batch.SourceSteps)

			// Whole-sequence correctness under teacher forcing.
			exact := make([]bool, batch.Size)
			for i := range exact {
				exact[i] = true
			}

			var total *tensor.Tensor[float32, *autodiff.Backend[B]]
			for t, x := range batch.DecoderSteps {
				var logits *tensor.Tensor[float32, *autodiff.Backend[B]]
				logits, h = model.DecodeStep(x, h)

				stepRaw := backend.CrossEntropy(logits.Raw(), batch.TargetSteps[t].Raw())
				step := tensor.New[float32, *autodiff.Backend[B]](stepRaw, backend)
				if total == nil {
					total = step
				} else {
					total = total.Add(step)
				}

				markMismatches(logits, batch.TargetSteps[t], exact)
			}

			if total == nil {
				// nOut == 0: nothing to learn from this batch.
				backend.Tape().Clear()
				continue
			}

			totalLoss += total.Raw().AsFloat32()[0]
			lossSteps += len(batch.DecoderSteps)

			// Seed the backward pass with d(sum)/d(sum) = 1.
			outputGrad, err := tensor.NewRaw(total.Shape(), total.DType(), backend.Device())
			if err != nil {
				return nil, fmt.Errorf("failed to create gradient seed: %w", err)
			}
			outputGrad.AsFloat32()[0] = 1.0

			grads := backend.Tape().Backward(outputGrad, backend)
			optimizer.Step(grads)
			backend.Tape().Clear()

			for _, ok := range exact {
				if ok {
					totalCorrect++
				}
			}
			totalSamples += batch.Size
		}

		stats := EpochStats{}
		if lossSteps > 0 {
			stats.Loss = totalLoss / float32(lossSteps)
		}
		if totalSamples > 0 {
			stats.Accuracy = float32(totalCorrect) / float32(totalSamples)
		}
		history.Epochs = append(history.Epochs, stats)
	}

	return history, nil
}

// markMismatches clears exact[i] when sample i's arg-max prediction at
// this step differs from the target label.
func markMismatches[B tensor.Backend](
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
	exact []bool,
) {
	shape := logits.Shape()
	batch, classes := shape[0], shape[1]
	data := logits.Raw().AsFloat32()
	labels := targets.Raw().AsInt32()

	for i := 0; i < batch; i++ {
		row := data[i*classes : (i+1)*classes]
		if int32(onehot.DecodeOne(row)) != labels[i] {
			exact[i] = false
		}
	}
}
