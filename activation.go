package convnet

import "math"

// Activation identifies one of the fixed set of activation functions. The numeric values are
// persisted in saved models and must not be reordered.
type Activation int32

const (
	LeakyReLU Activation = iota
	ReLU
	Sigmoid
	Softmax
)

const leakyReLUSlope float64 = 0.01

// String returns the name of the activation function.
func (a Activation) String() string {
	switch a {
	case LeakyReLU:
		return "leaky-relu"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Softmax:
		return "softmax"
	default:
		return "unknown"
	}
}

// Apply computes the activation of a single value. Softmax is not defined per-element (it
// normalizes over a whole vector) and panics with ErrScalarSoftmax; use Matrix.Softmax for it.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return leakyReLUSlope * x
	case ReLU:
		return math.Max(0, x)
	case Sigmoid:
		return 1.0 / (1.0 + math.Exp(-x))
	case Softmax:
		panic(ErrScalarSoftmax)
	default:
		panic(Error{"unknown activation function"})
	}
}

// Derivative computes the derivative of the activation at a single value. Softmax panics with
// ErrScalarSoftmaxDerivative for the same reason as Apply.
func (a Activation) Derivative(x float64) float64 {
	switch a {
	case LeakyReLU:
		if x > 0 {
			return 1
		}
		return leakyReLUSlope
	case ReLU:
		if x > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		s := a.Apply(x)
		return s * (1 - s)
	case Softmax:
		panic(ErrScalarSoftmaxDerivative)
	default:
		panic(Error{"unknown activation function"})
	}
}
