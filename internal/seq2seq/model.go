// Package seq2seq trains and runs a recurrent encoder-decoder on
// one-hot integer sequences. The model is composed entirely from Born
// layers; this package contributes the sequence wiring, the
// teacher-forced training loop and the greedy decode loop.
//
// One type carries the whole capability set: training (Fit), encoding a
// source sequence into a state, and advancing the decoder one step
// (DecodeStep). Training and inference share the same weights through
// the same object rather than through separate model handles.
package seq2seq

import (
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
)

// Config sizes an encoder-decoder.
type Config struct {
	// Cardinality is the one-hot alphabet size (input and output width).
	Cardinality int
	// Hidden is the recurrent state width of both encoder and decoder.
	Hidden int
}

// Model is the capability set a sequence-to-sequence network exposes to
// the training loop (Fit) and the decode loop (Predict).
type Model[B tensor.Backend] interface {
	// Encode folds the per-timestep source tensors into a final
	// [batch, hidden] state.
	Encode(steps []*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// DecodeStep advances the decoder by one step: given the previous
	// output symbol (one-hot, [batch, cardinality]) and the current
	// state, it returns the next-symbol logits and the new state.
	DecodeStep(x, state *tensor.Tensor[float32, B]) (logits, next *tensor.Tensor[float32, B])

	// Parameters returns all trainable parameters.
	Parameters() []*nn.Parameter[B]
}

// EncoderDecoder is a vanilla recurrent encoder-decoder:
//
//	encoder: h_t = tanh(W_ex @ x_t + W_eh @ h_{t-1} + b)
//	decoder: s_t = tanh(W_dx @ y_{t-1} + W_dh @ s_{t-1} + b)
//	output:  logits_t = W_o @ s_t + b_o
//
// The decoder state is initialized with the final encoder state, which
// is the only channel carrying information about the source sequence.
type EncoderDecoder[B tensor.Backend] struct {
	cfg Config

	encIn  *nn.Linear[B] // cardinality -> hidden
	encRec *nn.Linear[B] // hidden -> hidden
	decIn  *nn.Linear[B] // cardinality -> hidden
	decRec *nn.Linear[B] // hidden -> hidden
	out    *nn.Linear[B] // hidden -> cardinality
	tanh   *nn.Tanh[B]

	backend B
}

var _ Model[tensor.Backend] = (*EncoderDecoder[tensor.Backend])(nil)

// New creates an encoder-decoder with Xavier-initialized weights.
func New[B tensor.Backend](cfg Config, backend B) *EncoderDecoder[B] {
	if cfg.Cardinality < 2 || cfg.Hidden < 1 {
		panic("seq2seq: Config requires Cardinality >= 2 and Hidden >= 1")
	}
	return &EncoderDecoder[B]{
		cfg:     cfg,
		encIn:   nn.NewLinear[B](cfg.Cardinality, cfg.Hidden, backend),
		encRec:  nn.NewLinear[B](cfg.Hidden, cfg.Hidden, backend),
		decIn:   nn.NewLinear[B](cfg.Cardinality, cfg.Hidden, backend),
		decRec:  nn.NewLinear[B](cfg.Hidden, cfg.Hidden, backend),
		out:     nn.NewLinear[B](cfg.Hidden, cfg.Cardinality, backend),
		tanh:    nn.NewTanh[B](),
		backend: backend,
	}
}

// Config returns the model's dimensions.
func (m *EncoderDecoder[B]) Config() Config {
	return m.cfg
}

// Encode folds the source steps into the final encoder state.
// steps must be non-empty; each step is a [batch, cardinality] tensor.
func (m *EncoderDecoder[B]) Encode(steps []*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if len(steps) == 0 {
		panic("seq2seq: Encode requires at least one source step")
	}

	batch := steps[0].Shape()[0]
	h := tensor.Zeros[float32](tensor.Shape{batch, m.cfg.Hidden}, m.backend)
	for _, x := range steps {
		h = m.tanh.Forward(m.encIn.Forward(x).Add(m.encRec.Forward(h)))
	}
	return h
}

// DecodeStep advances the decoder by one timestep.
func (m *EncoderDecoder[B]) DecodeStep(x, state *tensor.Tensor[float32, B]) (logits, next *tensor.Tensor[float32, B]) {
	next = m.tanh.Forward(m.decIn.Forward(x).Add(m.decRec.Forward(state)))
	logits = m.out.Forward(next)
	return logits, next
}

// Forward runs a full teacher-forced pass: encode the source, then
// decode one step per decoder input, returning the per-step logits.
func (m *EncoderDecoder[B]) Forward(srcSteps, decSteps []*tensor.Tensor[float32, B]) []*tensor.Tensor[float32, B] {
	h := m.Encode(srcSteps)

	out := make([]*tensor.Tensor[float32, B], 0, len(decSteps))
	for _, x := range decSteps {
		var logits *tensor.Tensor[float32, B]
		logits, h = m.DecodeStep(x, h)
		out = append(out, logits)
	}
	return out
}

// Parameters returns all trainable parameters of the network.
func (m *EncoderDecoder[B]) Parameters() []*nn.Parameter[B] {
	params := make([]*nn.Parameter[B], 0)
	params = append(params, m.encIn.Parameters()...)
	params = append(params, m.encRec.Parameters()...)
	params = append(params, m.decIn.Parameters()...)
	params = append(params, m.decRec.Parameters()...)
	params = append(params, m.out.Parameters()...)
	return params
}
