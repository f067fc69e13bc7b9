package convnet

import "fmt"

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be panicked by guard clauses. They signal misuse of the
// API, not recoverable conditions, and are never returned.
var (
	// ErrScalarSoftmax is panicked when Softmax's per-element Apply is invoked. Softmax is only
	// defined over a whole column vector; use Matrix.Softmax instead.
	ErrScalarSoftmax = Error{"softmax requires a matrix, rather than a single value"}

	// ErrScalarSoftmaxDerivative is the Derivative counterpart to ErrScalarSoftmax.
	ErrScalarSoftmaxDerivative = Error{"softmax derivative must be computed with a matrix"}

	// ErrBackwardBeforeForward is panicked when a layer's Backward is called without a prior
	// Forward, leaving it with no cached input to differentiate against.
	ErrBackwardBeforeForward = Error{"backward called before forward; no cached input"}

	// ErrNotColumnVector is panicked by operations that require a flattened (n×1) matrix.
	ErrNotColumnVector = Error{"matrix is not a column vector"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// DimensionMismatchError is panicked by any matrix operation whose operands have incompatible
// shapes. It is fatal to the caller; no operation recovers from it internally.
type DimensionMismatchError struct {
	Op                   string
	Rows, Cols           int
	OtherRows, OtherCols int
}

func (err DimensionMismatchError) Error() string {
	return fmt.Sprintf("matrix dimensions do not match for %s: %d×%d vs %d×%d",
		err.Op, err.Rows, err.Cols, err.OtherRows, err.OtherCols)
}
