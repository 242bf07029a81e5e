package m

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Layer pairs a Neuron with the activated output of its last forward pass.
type Layer struct {
	Neuron Neuron
	Values []float64
}

func newLayer(rows, columns int, rng *rand.Rand) Layer {
	l := Layer{
		Neuron: NewNeuron(rows, columns),
		Values: make([]float64, columns),
	}
	l.Neuron.Randomize(rng)
	return l
}

func (l *Layer) reset(rng *rand.Rand) {
	l.Values = make([]float64, l.Neuron.Columns)
	l.Neuron.Randomize(rng)
}

// clone deep-copies the layer so callers cannot reach the network's buffers.
func (l Layer) clone() Layer {
	c := Layer{
		Neuron: Neuron{Rows: l.Neuron.Rows, Columns: l.Neuron.Columns},
		Values: append([]float64(nil), l.Values...),
	}
	if l.Neuron.Matrix != nil {
		c.Neuron.Matrix = mat.DenseCopyOf(l.Neuron.Matrix)
	}
	return c
}

func (l Layer) String() string {
	return l.Neuron.String()
}
