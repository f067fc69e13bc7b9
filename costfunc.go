package convnet

import "math"

// CostFunction identifies one of the fixed set of loss functions. The numeric values are
// persisted in saved models and must not be reordered.
type CostFunction int32

const (
	// MSE is the mean squared error over all elements.
	MSE CostFunction = iota

	// CrossEntropy is the binary cross-entropy, averaged over rows. Predictions are clamped to
	// [1e-9, 1-1e-9] so the logarithms stay finite.
	CrossEntropy

	// MAE is the mean absolute error over all elements.
	MAE
)

// crossEntropyEpsilon bounds predictions away from 0 and 1 before taking logarithms or dividing.
const crossEntropyEpsilon float64 = 1e-9

// String returns the name of the cost function.
func (cf CostFunction) String() string {
	switch cf {
	case MSE:
		return "mse"
	case CrossEntropy:
		return "cross-entropy"
	case MAE:
		return "mae"
	default:
		return "unknown"
	}
}

// Cost computes the scalar loss between a prediction and its expected value. Both matrices must
// have the same shape; Cost panics with type DimensionMismatchError if they do not.
func (cf CostFunction) Cost(predicted, expected Matrix) float64 {
	predicted.checkSameShape(expected, "cost function")

	switch cf {
	case MSE:
		difference := predicted.Subtract(expected)
		squared := difference.ElementWiseMultiply(difference)
		return squared.Sum() / float64(predicted.rows*predicted.cols)
	case CrossEntropy:
		var cost float64
		for row := 0; row < predicted.rows; row++ {
			for col := 0; col < predicted.cols; col++ {
				p := clamp(predicted.data[row][col], crossEntropyEpsilon, 1-crossEntropyEpsilon)
				y := expected.data[row][col]
				cost += y*math.Log(p) + (1-y)*math.Log(1-p)
			}
		}

		return -cost / float64(predicted.rows)
	case MAE:
		var cost float64
		for row := 0; row < predicted.rows; row++ {
			for col := 0; col < predicted.cols; col++ {
				cost += math.Abs(predicted.data[row][col] - expected.data[row][col])
			}
		}

		return cost / float64(predicted.rows*predicted.cols)
	default:
		panic(Error{"unknown cost function"})
	}
}

// Derivative computes the gradient of the loss with respect to each predicted element, returning
// a Matrix of the same shape as the inputs. Both matrices must have the same shape.
//
// MSE is normalized by the total element count (2·(p-e)/(rows·cols)). MAE resolves its
// non-differentiable point at zero difference toward -1; that is a modeling choice, not a bug.
func (cf CostFunction) Derivative(predicted, expected Matrix) Matrix {
	predicted.checkSameShape(expected, "cost function derivative")

	switch cf {
	case MSE:
		return predicted.Subtract(expected).Scale(2.0 / float64(predicted.rows*predicted.cols))
	case CrossEntropy:
		gradient := NewMatrix(predicted.rows, predicted.cols)
		for row := 0; row < predicted.rows; row++ {
			for col := 0; col < predicted.cols; col++ {
				p := clamp(predicted.data[row][col], crossEntropyEpsilon, 1-crossEntropyEpsilon)
				y := expected.data[row][col]
				gradient.data[row][col] = -(y / p) + (1-y)/(1-p)
			}
		}

		return gradient
	case MAE:
		gradient := NewMatrix(predicted.rows, predicted.cols)
		factor := 1.0 / float64(predicted.rows*predicted.cols)
		for row := 0; row < predicted.rows; row++ {
			for col := 0; col < predicted.cols; col++ {
				if predicted.data[row][col]-expected.data[row][col] > 0 {
					gradient.data[row][col] = factor
				} else {
					gradient.data[row][col] = -factor
				}
			}
		}

		return gradient
	default:
		panic(Error{"unknown cost function"})
	}
}

func clamp(x, lower, upper float64) float64 {
	return math.Max(lower, math.Min(x, upper))
}
