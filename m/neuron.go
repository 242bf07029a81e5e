package m

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Neuron holds the weight matrix connecting a layer to the one before it.
// Rows is the previous layer's size, Columns the size of this layer.
// A neuron with zero rows or columns has no Matrix.
type Neuron struct {
	Rows    int
	Columns int
	Matrix  *mat.Dense
}

// NewNeuron creates a rows×columns neuron with all weights zero.
func NewNeuron(rows, columns int) Neuron {
	n := Neuron{Rows: rows, Columns: columns}
	if rows > 0 && columns > 0 {
		n.Matrix = mat.NewDense(rows, columns, nil)
	}
	return n
}

// Randomize sets every weight to one of the integers -5..4.
func (n *Neuron) Randomize(rng *rand.Rand) {
	if n.Matrix == nil {
		return
	}
	raw := n.Matrix.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] = float64(rng.Intn(10)) - 5.0
		}
	}
}

// Weights returns a copy of the matrix as row slices.
func (n Neuron) Weights() [][]float64 {
	if n.Matrix == nil {
		return zeros(n.Rows, n.Columns)
	}
	return FromDense(n.Matrix)
}

func (n Neuron) String() string {
	return fmt.Sprintf("rows: %d, columns: %d, %v", n.Rows, n.Columns, n.Weights())
}
