package convnet

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Matrix is a dense, row-major 2D container of float64 values. Every operation that produces a
// Matrix returns a fresh instance; the backing storage is never shared between two matrices, so a
// Matrix can be treated as an immutable value once constructed.
type Matrix struct {
	rows, cols int
	data       [][]float64
}

// NewMatrix returns a rows×cols Matrix with every element set to zero.
func NewMatrix(rows, cols int) Matrix {
	data := make([][]float64, rows)
	for row := range data {
		data[row] = make([]float64, cols)
	}

	return Matrix{rows, cols, data}
}

// FromData returns a Matrix whose elements are copied from the provided grid. Every row of the
// grid must have the same length; FromData panics with type DimensionMismatchError if one does
// not.
func FromData(data [][]float64) Matrix {
	if data == nil {
		panic(NilArgError{"data"})
	}

	m := NewMatrix(len(data), len(data[0]))
	for row := range data {
		if len(data[row]) != m.cols {
			panic(DimensionMismatchError{"construction", len(data), m.cols, row, len(data[row])})
		}

		copy(m.data[row], data[row])
	}

	return m
}

// Randomized returns a rows×cols Matrix with each element drawn uniformly from [-1, 1) using the
// provided generator. The generator is explicit so that callers can seed it for reproducibility.
func Randomized(rows, cols int, rng *rand.Rand) Matrix {
	if rng == nil {
		panic(NilArgError{"rng"})
	}

	m := NewMatrix(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			m.data[row][col] = rng.Float64()*2 - 1
		}
	}

	return m
}

// Rows returns the number of rows in the Matrix.
func (m Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns in the Matrix.
func (m Matrix) Cols() int {
	return m.cols
}

// At returns the element at the given row and column.
func (m Matrix) At(row, col int) float64 {
	return m.data[row][col]
}

// ToData returns a copy of the backing grid. Modifying the returned slices does not affect the
// Matrix.
func (m Matrix) ToData() [][]float64 {
	data := make([][]float64, m.rows)
	for row := range data {
		data[row] = make([]float64, m.cols)
		copy(data[row], m.data[row])
	}

	return data
}

// checkSameShape panics with type DimensionMismatchError if the two matrices do not share the
// same shape. 'op' names the offending operation in the panic message.
func (m Matrix) checkSameShape(other Matrix, op string) {
	if m.rows != other.rows || m.cols != other.cols {
		panic(DimensionMismatchError{op, m.rows, m.cols, other.rows, other.cols})
	}
}

// Add returns the element-wise sum of the two matrices. Both must have the same shape.
func (m Matrix) Add(other Matrix) Matrix {
	m.checkSameShape(other, "addition")

	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = m.data[row][col] + other.data[row][col]
		}
	}

	return result
}

// Subtract returns the element-wise difference of the two matrices. Both must have the same
// shape.
func (m Matrix) Subtract(other Matrix) Matrix {
	m.checkSameShape(other, "subtraction")

	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = m.data[row][col] - other.data[row][col]
		}
	}

	return result
}

// Scale returns the Matrix with every element multiplied by the given scalar.
func (m Matrix) Scale(scalar float64) Matrix {
	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = m.data[row][col] * scalar
		}
	}

	return result
}

// Multiply returns the standard matrix product m·other. The number of columns of m must equal the
// number of rows of other; the result has shape m.Rows()×other.Cols().
func (m Matrix) Multiply(other Matrix) Matrix {
	if m.cols != other.rows {
		panic(DimensionMismatchError{"multiplication", m.rows, m.cols, other.rows, other.cols})
	}

	result := NewMatrix(m.rows, other.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < other.cols; col++ {
			var sum float64
			for i := 0; i < m.cols; i++ {
				sum += m.data[row][i] * other.data[i][col]
			}

			result.data[row][col] = sum
		}
	}

	return result
}

// ElementWiseMultiply returns the Hadamard product of the two matrices. Both must have the same
// shape.
func (m Matrix) ElementWiseMultiply(other Matrix) Matrix {
	m.checkSameShape(other, "element-wise multiplication")

	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = m.data[row][col] * other.data[row][col]
		}
	}

	return result
}

// Transpose returns the Matrix with its row and column indices swapped.
func (m Matrix) Transpose() Matrix {
	result := NewMatrix(m.cols, m.rows)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[col][row] = m.data[row][col]
		}
	}

	return result
}

// Sum returns the total of all elements in the Matrix.
func (m Matrix) Sum() float64 {
	var sum float64
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			sum += m.data[row][col]
		}
	}

	return sum
}

// Exp returns the Matrix with the natural exponential applied to every element.
func (m Matrix) Exp() Matrix {
	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = math.Exp(m.data[row][col])
		}
	}

	return result
}

// Activate applies the activation's scalar function to every element. Softmax cannot be applied
// per-element; Activate panics with ErrScalarSoftmax if fn is Softmax.
func (m Matrix) Activate(fn Activation) Matrix {
	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = fn.Apply(m.data[row][col])
		}
	}

	return result
}

// ActivationDerivative applies the activation's scalar derivative to every element. As with
// Activate, fn must not be Softmax.
func (m Matrix) ActivationDerivative(fn Activation) Matrix {
	result := NewMatrix(m.rows, m.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[row][col] = fn.Derivative(m.data[row][col])
		}
	}

	return result
}

// Softmax exponentiates every element and scales by the reciprocal of the total, so that the
// result sums to 1. The exponentials are not stabilized by max-subtraction; sufficiently large
// inputs will overflow. That behavior is kept as-is because previously trained models depend on
// these exact numerics.
func (m Matrix) Softmax() Matrix {
	exp := m.Exp()
	return exp.Scale(1 / exp.Sum())
}

// Flatten reshapes the Matrix into a single column vector in row-major order, producing a
// (rows·cols)×1 Matrix. It is used to convert a 2D image into a network input.
func (m Matrix) Flatten() Matrix {
	result := NewMatrix(m.rows*m.cols, 1)
	index := 0
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			result.data[index][0] = m.data[row][col]
			index++
		}
	}

	return result
}

// SortFlattenedByIndex returns the row indices of a column vector ordered by descending value.
// Equal values keep their original relative order (the sort is stable); no ordering beyond that
// is guaranteed for ties. SortFlattenedByIndex panics with ErrNotColumnVector if the Matrix has
// more than one column.
func (m Matrix) SortFlattenedByIndex() []int {
	if m.cols != 1 {
		panic(ErrNotColumnVector)
	}

	indexes := make([]int, m.rows)
	for i := range indexes {
		indexes[i] = i
	}

	sort.SliceStable(indexes, func(i, j int) bool {
		return m.data[indexes[i]][0] > m.data[indexes[j]][0]
	})

	return indexes
}

// String formats the Matrix one row per line, mostly for debugging.
func (m Matrix) String() string {
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		fmt.Fprintf(&b, "%v\n", m.data[row])
	}

	return b.String()
}
