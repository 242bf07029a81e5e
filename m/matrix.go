package m

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MatrixProduct returns a·b. The column count of a must equal the row count of b.
func MatrixProduct(a, b [][]float64) ([][]float64, error) {
	sa, err := shapeOf(a)
	if err != nil {
		return nil, err
	}
	sb, err := shapeOf(b)
	if err != nil {
		return nil, err
	}
	if sa.Cols != sb.Rows {
		return nil, &DimensionError{Op: "product", A: sa, B: sb}
	}
	if sa.Rows == 0 || sa.Cols == 0 || sb.Cols == 0 {
		return zeros(sa.Rows, sb.Cols), nil
	}

	o, err := dot(ToDense(a), ToDense(b))
	if err != nil {
		return nil, err
	}
	return FromDense(o), nil
}

// OuterProduct takes a 1×n matrix a and an m×1 matrix b and returns the m×n matrix
// with result[i][j] = a[0][j] * b[i][0].
func OuterProduct(a, b [][]float64) ([][]float64, error) {
	sa, err := shapeOf(a)
	if err != nil {
		return nil, err
	}
	sb, err := shapeOf(b)
	if err != nil {
		return nil, err
	}
	if sa.Rows != 1 || sb.Cols != 1 {
		return nil, &DimensionError{Op: "outer product", A: sa, B: sb}
	}
	if sa.Cols == 0 || sb.Rows == 0 {
		return zeros(sb.Rows, sa.Cols), nil
	}

	o := outer(a[0], Transpose(b)[0])
	return FromDense(o), nil
}

// MatrixDifference returns a-b elementwise. Both matrices must have the same shape.
func MatrixDifference(a, b [][]float64) ([][]float64, error) {
	sa, err := shapeOf(a)
	if err != nil {
		return nil, err
	}
	sb, err := shapeOf(b)
	if err != nil {
		return nil, err
	}
	if sa != sb {
		return nil, &DimensionError{Op: "difference", A: sa, B: sb}
	}
	if sa.Rows == 0 || sa.Cols == 0 {
		return zeros(sa.Rows, sa.Cols), nil
	}

	o, err := subtract(ToDense(a), ToDense(b))
	if err != nil {
		return nil, err
	}
	return FromDense(o), nil
}

// Transpose swaps rows and columns. An empty input yields an empty result.
// Ragged input does not fail: column j of the result holds the j-th element of every
// row long enough to have one, so its rows may differ in length too.
func Transpose[T any](input [][]T) [][]T {
	if len(input) == 0 {
		return [][]T{}
	}
	width := 0
	for _, row := range input {
		width = max(width, len(row))
	}
	out := make([][]T, width)
	for _, row := range input {
		for j, v := range row {
			out[j] = append(out[j], v)
		}
	}
	return out
}

// ToDense copies a rectangular, non-empty [][]float64 into a gonum matrix.
func ToDense(x [][]float64) *mat.Dense {
	r, c := len(x), len(x[0])
	o := mat.NewDense(r, c, nil)
	for i, row := range x {
		o.SetRow(i, row)
	}
	return o
}

// FromDense copies a gonum matrix into row slices.
func FromDense(x mat.Matrix) [][]float64 {
	r, c := x.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = x.At(i, j)
		}
	}
	return out
}

func shapeOf(x [][]float64) (Shape, error) {
	if len(x) == 0 {
		return Shape{}, nil
	}
	s := Shape{Rows: len(x), Cols: len(x[0])}
	for i, row := range x {
		if len(row) != s.Cols {
			return Shape{}, errors.Errorf("ragged matrix: row %d has %d columns, row 0 has %d", i, len(row), s.Cols)
		}
	}
	return s, nil
}

func zeros(r, c int) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
	}
	return out
}

func dot(a, b mat.Matrix) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, &DimensionError{Op: "product", A: Shape{ar, ac}, B: Shape{br, bc}}
	}
	o := mat.NewDense(ar, bc, nil)
	o.Mul(a, b)
	return o, nil
}

func subtract(a, b mat.Matrix) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return nil, &DimensionError{Op: "difference", A: Shape{ar, ac}, B: Shape{br, bc}}
	}
	o := mat.NewDense(ar, ac, nil)
	o.Sub(a, b)
	return o, nil
}

func mulElem(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, &DimensionError{Op: "elementwise product", A: Shape{1, len(a)}, B: Shape{1, len(b)}}
	}
	if len(a) == 0 {
		return []float64{}, nil
	}
	o := mat.NewVecDense(len(a), nil)
	o.MulElemVec(mat.NewVecDense(len(a), a), mat.NewVecDense(len(b), b))
	return o.RawVector().Data, nil
}

func apply(fn func(i, j int, v float64) float64, x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(fn, x)
	return o
}

// outer returns the len(col)×len(row) matrix col·rowᵀ.
func outer(row, col []float64) *mat.Dense {
	o := mat.NewDense(len(col), len(row), nil)
	o.Outer(1, mat.NewVecDense(len(col), col), mat.NewVecDense(len(row), row))
	return o
}
