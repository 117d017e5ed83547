package seq2seq

import (
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
)

// TestEncoderDecoder_EncodeShape tests that the encoder folds a
// sequence of steps into a [batch, hidden] state.
func TestEncoderDecoder_EncodeShape(t *testing.T) {
	backend := cpu.New()
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	steps := make([]*tensor.Tensor[float32, *cpu.Backend], 3)
	for i := range steps {
		steps[i] = tensor.Zeros[float32](tensor.Shape{2, 5}, backend)
	}

	state := model.Encode(steps)

	expected := tensor.Shape{2, 8}
	if !state.Shape().Equal(expected) {
		t.Errorf("Encoder state shape: expected %v, got %v", expected, state.Shape())
	}
}

// TestEncoderDecoder_DecodeStepShapes tests one decoder step's output
// shapes.
func TestEncoderDecoder_DecodeStepShapes(t *testing.T) {
	backend := cpu.New()
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	x := tensor.Zeros[float32](tensor.Shape{2, 5}, backend)
	state := tensor.Zeros[float32](tensor.Shape{2, 8}, backend)

	logits, next := model.DecodeStep(x, state)

	if !logits.Shape().Equal(tensor.Shape{2, 5}) {
		t.Errorf("Logits shape: expected [2 5], got %v", logits.Shape())
	}
	if !next.Shape().Equal(tensor.Shape{2, 8}) {
		t.Errorf("Next state shape: expected [2 8], got %v", next.Shape())
	}
}

// TestEncoderDecoder_Forward tests that the teacher-forced pass yields
// one logits tensor per decoder input.
func TestEncoderDecoder_Forward(t *testing.T) {
	backend := cpu.New()
	model := New(Config{Cardinality: 6, Hidden: 4}, backend)

	srcSteps := make([]*tensor.Tensor[float32, *cpu.Backend], 4)
	for i := range srcSteps {
		srcSteps[i] = tensor.Zeros[float32](tensor.Shape{3, 6}, backend)
	}
	decSteps := make([]*tensor.Tensor[float32, *cpu.Backend], 2)
	for i := range decSteps {
		decSteps[i] = tensor.Zeros[float32](tensor.Shape{3, 6}, backend)
	}

	out := model.Forward(srcSteps, decSteps)

	if len(out) != 2 {
		t.Fatalf("Expected 2 logits tensors, got %d", len(out))
	}
	for i, logits := range out {
		if !logits.Shape().Equal(tensor.Shape{3, 6}) {
			t.Errorf("Step %d logits shape: expected [3 6], got %v", i, logits.Shape())
		}
	}
}

// TestEncoderDecoder_Parameters tests that all five linear layers
// contribute their weights and biases.
func TestEncoderDecoder_Parameters(t *testing.T) {
	backend := cpu.New()
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	params := model.Parameters()
	if len(params) != 10 {
		t.Errorf("Expected 10 parameters (5 layers x weight+bias), got %d", len(params))
	}
}

// TestNew_BadConfig tests that undersized configurations are rejected.
func TestNew_BadConfig(t *testing.T) {
	backend := cpu.New()

	for _, cfg := range []Config{
		{Cardinality: 1, Hidden: 8},
		{Cardinality: 5, Hidden: 0},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%+v) did not panic", cfg)
				}
			}()
			New(cfg, backend)
		}()
	}
}

// TestEncode_EmptySteps tests that encoding nothing panics.
func TestEncode_EmptySteps(t *testing.T) {
	backend := cpu.New()
	model := New(Config{Cardinality: 5, Hidden: 8}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Encode with no steps did not panic")
		}
	}()
	model.Encode(nil)
}
