package seq2seq

import (
	"errors"
	"testing"

	"github.com/born-ml/born/autodiff"
	"github.com/born-ml/born/backend/cpu"

	"github.com/born-ml/autoenc/internal/dataset"
	"github.com/born-ml/autoenc/internal/seq"
)

// trainingBatches builds a small deterministic batch set for the
// training tests.
func trainingBatches(t *testing.T, backend *autodiff.Backend[*cpu.Backend], nIn, nOut, cardinality, nSamples, batchSize int) []*dataset.SeqBatch[*autodiff.Backend[*cpu.Backend]] {
	t.Helper()

	builder := dataset.NewBuilder(seq.NewFromSeed(42))
	d, err := builder.Build(nIn, nOut, cardinality, nSamples)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	batches, err := dataset.SeqBatches(d, batchSize, backend)
	if err != nil {
		t.Fatalf("SeqBatches failed: %v", err)
	}
	return batches
}

// TestFit_LossDecreases tests that training on a tiny reversal task
// reduces the loss.
func TestFit_LossDecreases(t *testing.T) {
	backend := autodiff.New(cpu.New())
	batches := trainingBatches(t, backend, 3, 2, 5, 20, 10)
	model := New(Config{Cardinality: 5, Hidden: 16}, backend)

	history, err := Fit(model, batches, FitConfig{Epochs: 20, LR: 0.01}, backend)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if len(history.Epochs) != 20 {
		t.Fatalf("Expected 20 epochs of history, got %d", len(history.Epochs))
	}

	first := history.Epochs[0].Loss
	last := history.Final().Loss
	if last >= first {
		t.Errorf("Loss did not decrease: first=%f, last=%f", first, last)
	}
}

// TestFit_AccuracyRange tests that the reported accuracy stays a valid
// fraction.
func TestFit_AccuracyRange(t *testing.T) {
	backend := autodiff.New(cpu.New())
	batches := trainingBatches(t, backend, 3, 2, 5, 10, 5)
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	history, err := Fit(model, batches, FitConfig{Epochs: 2, LR: 0.01}, backend)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for i, stats := range history.Epochs {
		if stats.Accuracy < 0 || stats.Accuracy > 1 {
			t.Errorf("Epoch %d accuracy out of [0, 1]: %f", i, stats.Accuracy)
		}
		if stats.Loss < 0 {
			t.Errorf("Epoch %d negative loss: %f", i, stats.Loss)
		}
	}
}

// TestFit_DefaultLearningRate tests that LR zero falls back to the
// default instead of freezing the optimizer.
func TestFit_DefaultLearningRate(t *testing.T) {
	backend := autodiff.New(cpu.New())
	batches := trainingBatches(t, backend, 3, 2, 5, 10, 5)
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	history, err := Fit(model, batches, FitConfig{Epochs: 1}, backend)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(history.Epochs) != 1 {
		t.Errorf("Expected 1 epoch of history, got %d", len(history.Epochs))
	}
}

// TestFit_EmptyTargets tests that sequences with no decoder steps do
// not break training.
func TestFit_EmptyTargets(t *testing.T) {
	backend := autodiff.New(cpu.New())
	batches := trainingBatches(t, backend, 3, 0, 5, 6, 3)
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	history, err := Fit(model, batches, FitConfig{Epochs: 2, LR: 0.01}, backend)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for i, stats := range history.Epochs {
		if stats.Loss != 0 {
			t.Errorf("Epoch %d expected zero loss with no decoder steps, got %f", i, stats.Loss)
		}
	}
}

// TestFit_Errors tests the eager argument validation.
func TestFit_Errors(t *testing.T) {
	backend := autodiff.New(cpu.New())
	batches := trainingBatches(t, backend, 3, 2, 5, 10, 5)
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	if _, err := Fit(model, nil, FitConfig{Epochs: 1}, backend); !errors.Is(err, ErrNoBatches) {
		t.Errorf("Expected ErrNoBatches, got %v", err)
	}
	if _, err := Fit(model, batches, FitConfig{Epochs: 0}, backend); !errors.Is(err, ErrEpochs) {
		t.Errorf("Expected ErrEpochs, got %v", err)
	}
}
