package m

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// InitParameters describes a whole topology at once.
type InitParameters struct {
	InputSize         int
	OutputSize        int
	HiddenLayersSizes []int
}

// Observer is told about topology changes, e.g. to keep a visualization in sync.
// Hidden layer indexes count hidden layers only, starting at 0.
type Observer interface {
	NetworkCreated(sizeIn, sizeOut int)
	HiddenLayerAdded(index, size int)
	HiddenLayerRemoved(index int)
}

type Option func(*Network)

// WithRand sets the source used for weight initialization and reset.
func WithRand(src rand.Source) Option {
	return func(net *Network) {
		net.rng = rand.New(src)
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.NewSource(seed))
}

func WithObserver(o Observer) Option {
	return func(net *Network) {
		net.observer = o
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(net *Network) {
		net.logger = l
	}
}

// Network is a fully connected feed-forward network with sigmoid activation on every
// layer after the input.
//
// layers[0] is a placeholder for the input: it has no weights and its Values stay zero.
// Every other layer i has a rows×columns weight matrix where rows equals the column
// count of layer i-1.
//
// Activated values lie in (0, 1) mathematically, but float64 saturates: with weights in
// -5..4 and inputs like BasicSample's, 1/(1+e^x) rounds to exactly 0 or 1. Only the
// closed interval [0, 1] holds for arbitrary inputs.
//
// A Network is not safe for concurrent use. At most one operation may run at a time,
// including read-only inspection.
type Network struct {
	sizeIn    int
	sizeOut   int
	layers    []Layer
	activator Activator
	rng       *rand.Rand
	observer  Observer
	logger    *slog.Logger
}

// NewNetwork creates a network with an input placeholder and an output layer and no
// hidden layers.
func NewNetwork(sizeIn, sizeOut int, opts ...Option) (*Network, error) {
	if sizeIn < 1 {
		return nil, errors.Wrapf(ErrInvalidSize, "input size %d", sizeIn)
	}
	if sizeOut < 1 {
		return nil, errors.Wrapf(ErrInvalidSize, "output size %d", sizeOut)
	}

	net := &Network{
		sizeIn:    sizeIn,
		sizeOut:   sizeOut,
		activator: SigmoidActivator{Beta: NetworkBeta},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(net)
	}
	if net.rng == nil {
		net.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	net.layers = []Layer{
		newLayer(0, sizeIn, net.rng),
		newLayer(sizeIn, sizeOut, net.rng),
	}
	if net.observer != nil {
		net.observer.NetworkCreated(sizeIn, sizeOut)
	}
	return net, nil
}

// NewNetworkWith creates a network and appends params.HiddenLayersSizes in order.
func NewNetworkWith(params InitParameters, opts ...Option) (*Network, error) {
	net, err := NewNetwork(params.InputSize, params.OutputSize, opts...)
	if err != nil {
		return nil, err
	}
	for _, n := range params.HiddenLayersSizes {
		if err := net.AppendHiddenLayer(n); err != nil {
			return nil, err
		}
	}
	return net, nil
}

func (net *Network) lastIndex() int {
	return len(net.layers) - 1
}

// AppendHiddenLayer inserts a layer of n neurons just before the output layer. The
// output layer is rebuilt with fresh random weights to match the new size, so any
// training it received is lost.
func (net *Network) AppendHiddenLayer(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidSize, "hidden layer size %d", n)
	}

	last := net.lastIndex()
	prev := net.layers[last-1].Neuron.Columns
	net.layers = append(net.layers[:last:last],
		newLayer(prev, n, net.rng),
		newLayer(n, net.sizeOut, net.rng),
	)

	net.logger.Debug("hidden layer appended", "index", last-1, "size", n, "sizes", net.Sizes())
	if net.observer != nil {
		net.observer.HiddenLayerAdded(last-1, n)
	}
	return nil
}

// RemoveHiddenLayer drops the hidden layer at index. The layer after it is rebuilt with
// fresh random weights sized to its new predecessor.
func (net *Network) RemoveHiddenLayer(index int) error {
	hidden := len(net.layers) - 2
	if index < 0 || index >= hidden {
		return errors.Errorf("hidden layer %d out of range, network has %d", index, hidden)
	}

	pos := index + 1
	layers := make([]Layer, 0, len(net.layers)-1)
	layers = append(layers, net.layers[:pos]...)
	layers = append(layers, net.layers[pos+1:]...)
	layers[pos] = newLayer(layers[pos-1].Neuron.Columns, layers[pos].Neuron.Columns, net.rng)
	net.layers = layers

	net.logger.Debug("hidden layer removed", "index", index, "sizes", net.Sizes())
	if net.observer != nil {
		net.observer.HiddenLayerRemoved(index)
	}
	return nil
}

// Propagate runs a forward pass and returns the output vector. Each layer's Values are
// replaced with its activated output; weights are not touched.
func (net *Network) Propagate(sample TrainingData) ([]float64, error) {
	if len(sample.VectorIn) != net.sizeIn {
		return nil, &SampleSizeError{Field: "input vector", Got: len(sample.VectorIn), Want: net.sizeIn}
	}

	vector := mat.NewDense(1, net.sizeIn, append([]float64(nil), sample.VectorIn...))
	for i := 1; i < len(net.layers); i++ {
		product, err := dot(vector, net.layers[i].Neuron.Matrix)
		if err != nil {
			return nil, errors.Wrapf(err, "propagate layer %d", i)
		}
		vector = apply(net.activator.Activate, product)
		net.layers[i].Values = append(net.layers[i].Values[:0], vector.RawRowView(0)...)
	}
	return append([]float64(nil), vector.RawRowView(0)...), nil
}

// CalculateError propagates sample and returns expected minus actual output.
func (net *Network) CalculateError(sample TrainingData) ([]float64, error) {
	if len(sample.VectorOut) != net.sizeOut {
		return nil, &SampleSizeError{Field: "output vector", Got: len(sample.VectorOut), Want: net.sizeOut}
	}
	ysim, err := net.Propagate(sample)
	if err != nil {
		return nil, err
	}
	return floats.SubTo(make([]float64, net.sizeOut), sample.VectorOut, ysim), nil
}

// BackPropagate performs one gradient descent step on sample.
func (net *Network) BackPropagate(sample TrainingData) error {
	errVec, err := net.CalculateError(sample)
	if err != nil {
		return err
	}

	for i := net.lastIndex(); i >= 1; i-- {
		layer := &net.layers[i]

		deriv := make([]float64, len(layer.Values))
		for j, v := range layer.Values {
			deriv[j] = net.activator.Derivative(v)
		}
		delta, err := mulElem(errVec, deriv)
		if err != nil {
			return errors.Wrapf(err, "delta of layer %d", i)
		}

		back, err := dot(mat.NewDense(1, len(delta), delta), layer.Neuron.Matrix.T())
		if err != nil {
			return errors.Wrapf(err, "error of layer %d", i-1)
		}
		errVec = back.RawRowView(0)

		weightDelta := outer(net.layers[i-1].Values, delta)
		updated, err := subtract(layer.Neuron.Matrix, weightDelta.T())
		if err != nil {
			return errors.Wrapf(err, "update layer %d", i)
		}
		layer.Neuron.Matrix = updated
	}
	return nil
}

// Train runs BackPropagate on every sample, in order, epochs times. All samples are
// checked before any weight changes.
func (net *Network) Train(samples []TrainingData, epochs int) error {
	if epochs < 0 {
		return errors.Errorf("epochs must be >= 0 (got %d)", epochs)
	}
	if err := net.CheckSamples(samples); err != nil {
		return err
	}

	net.logger.Debug("training started", "samples", len(samples), "epochs", epochs)
	start := time.Now()
	for epoch := 0; epoch < epochs; epoch++ {
		for i := range samples {
			if err := net.BackPropagate(samples[i]); err != nil {
				return errors.Wrapf(err, "epoch %d, sample %d", epoch, i)
			}
		}
	}
	net.logger.Debug("training finished", "epochs", epochs, "took", time.Since(start))
	return nil
}

// CheckSamples verifies every sample fits the network's input and output sizes.
func (net *Network) CheckSamples(samples []TrainingData) error {
	for i, s := range samples {
		if len(s.VectorIn) != net.sizeIn {
			return errors.Wrapf(&SampleSizeError{Field: "input vector", Got: len(s.VectorIn), Want: net.sizeIn}, "sample %d", i)
		}
		if len(s.VectorOut) != net.sizeOut {
			return errors.Wrapf(&SampleSizeError{Field: "output vector", Got: len(s.VectorOut), Want: net.sizeOut}, "sample %d", i)
		}
	}
	return nil
}

// Reset zeroes every layer's Values and draws new weights. The topology is kept.
func (net *Network) Reset() {
	for i := range net.layers {
		net.layers[i].reset(net.rng)
	}
	net.logger.Debug("network reset", "sizes", net.Sizes())
}

// ErrorNorm is the Euclidean length of CalculateError(sample).
func (net *Network) ErrorNorm(sample TrainingData) (float64, error) {
	e, err := net.CalculateError(sample)
	if err != nil {
		return 0, err
	}
	return floats.Norm(e, 2), nil
}

// MeanSquaredError averages the per-sample mean squared error over samples.
func (net *Network) MeanSquaredError(samples []TrainingData) (float64, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	mse := make([]float64, len(samples))
	for i, s := range samples {
		e, err := net.CalculateError(s)
		if err != nil {
			return 0, errors.Wrapf(err, "sample %d", i)
		}
		mse[i] = floats.Dot(e, e) / float64(len(e))
	}
	return stat.Mean(mse, nil), nil
}

// Sizes returns the neuron count of every layer, input and output included.
func (net *Network) Sizes() []int {
	sizes := make([]int, len(net.layers))
	for i, l := range net.layers {
		sizes[i] = l.Neuron.Columns
	}
	return sizes
}

func (net *Network) SizeIn() int      { return net.sizeIn }
func (net *Network) SizeOut() int     { return net.sizeOut }
func (net *Network) LayersCount() int { return len(net.layers) }

// Layers returns a deep copy of the layers.
func (net *Network) Layers() []Layer {
	out := make([]Layer, len(net.layers))
	for i, l := range net.layers {
		out[i] = l.clone()
	}
	return out
}

func (net *Network) String() string {
	return fmt.Sprintf("%v", net.layers)
}
