package m

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidSize is returned when a layer, input or output size is not positive.
var ErrInvalidSize = errors.New("layer size must be positive")

// Shape is the (rows, columns) size of a matrix.
type Shape struct {
	Rows, Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// DimensionError reports an operation attempted on matrices of incompatible shapes.
type DimensionError struct {
	Op   string
	A, B Shape
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("matrix %s: incompatible shapes (%v, %v)", e.Op, e.A, e.B)
}

// SampleSizeError reports a training sample vector whose length does not match the network.
type SampleSizeError struct {
	Field string
	Got   int
	Want  int
}

func (e *SampleSizeError) Error() string {
	return fmt.Sprintf("%s has %d values, network expects %d", e.Field, e.Got, e.Want)
}
