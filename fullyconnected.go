package convnet

import "math/rand"

// FullyConnectedLayer connects every input to every output through a weight matrix, adds a bias
// to each output, and applies an activation function. It owns two gradient accumulators that
// Backward adds into across a mini-batch until ApplyGradient and ClearGradient flush them.
type FullyConnectedLayer struct {
	weights, costGradientWeights Matrix
	biases, costGradientBiases   Matrix
	activation                   Activation

	// previousInput and weightedInput (the pre-activation z) are cached by Forward for use in
	// Backward. hasForwarded guards against Backward running on an empty cache.
	previousInput Matrix
	weightedInput Matrix
	hasForwarded  bool
}

// NewFullyConnectedLayer returns a layer mapping numInputs values to numOutputs values through
// the given activation. Weights and biases are drawn uniformly from [-1, 1) using the provided
// generator, and the gradient accumulators start at zero.
func NewFullyConnectedLayer(numInputs, numOutputs int, activation Activation, rng *rand.Rand) *FullyConnectedLayer {
	l := &FullyConnectedLayer{
		weights:    Randomized(numOutputs, numInputs, rng),
		biases:     Randomized(numOutputs, 1, rng),
		activation: activation,
	}

	l.ClearGradient()
	return l
}

// LoadFullyConnectedLayer returns a layer around previously persisted weights and biases.
// Weights must be numOutputs×numInputs and biases numOutputs×1; the constructor panics with type
// DimensionMismatchError otherwise.
func LoadFullyConnectedLayer(weights, biases Matrix, activation Activation) *FullyConnectedLayer {
	if biases.cols != 1 || biases.rows != weights.rows {
		panic(DimensionMismatchError{"bias construction", weights.rows, 1, biases.rows, biases.cols})
	}

	l := &FullyConnectedLayer{
		weights:    weights,
		biases:     biases,
		activation: activation,
	}

	l.ClearGradient()
	return l
}

// NumInputs returns the number of input values the layer expects.
func (l *FullyConnectedLayer) NumInputs() int {
	return l.weights.cols
}

// NumOutputs returns the number of values the layer produces.
func (l *FullyConnectedLayer) NumOutputs() int {
	return l.weights.rows
}

// Type returns FullyConnected.
func (l *FullyConnectedLayer) Type() LayerType {
	return FullyConnected
}

// ActivationFunction returns the layer's activation.
func (l *FullyConnectedLayer) ActivationFunction() Activation {
	return l.activation
}

// Weights returns the layer's weight matrix.
func (l *FullyConnectedLayer) Weights() Matrix {
	return l.weights
}

// Biases returns the layer's bias column vector.
func (l *FullyConnectedLayer) Biases() Matrix {
	return l.biases
}

// Forward computes a = activation(W·input + b), caching the input and the pre-activation z for
// the next Backward call.
func (l *FullyConnectedLayer) Forward(input Matrix) Matrix {
	l.previousInput = input
	l.weightedInput = l.weights.Multiply(input).Add(l.biases)
	l.hasForwarded = true

	if l.activation == Softmax {
		return l.weightedInput.Softmax()
	}

	return l.weightedInput.Activate(l.activation)
}

// Backward consumes dC/da, the gradient of the cost with respect to this layer's activated
// output. It forms delta = dC/da ⊙ activation'(z), accumulates delta·inputᵀ into the weight
// gradient and delta into the bias gradient, and returns Wᵀ·delta for the previous layer.
//
// Backward panics with ErrBackwardBeforeForward if no Forward call has populated the cache.
func (l *FullyConnectedLayer) Backward(outputGradient Matrix) Matrix {
	if !l.hasForwarded {
		panic(ErrBackwardBeforeForward)
	}

	delta := outputGradient.ElementWiseMultiply(l.weightedInput.ActivationDerivative(l.activation))
	return l.accumulate(delta)
}

// BackwardOutput is the fused output-layer path, valid only when this layer's activation is
// Softmax and the network's cost is CrossEntropy: the chain rule collapses to
// delta = predicted - expected, skipping the activation-derivative step entirely.
func (l *FullyConnectedLayer) BackwardOutput(predicted, expected Matrix) Matrix {
	if !l.hasForwarded {
		panic(ErrBackwardBeforeForward)
	}

	return l.accumulate(predicted.Subtract(expected))
}

func (l *FullyConnectedLayer) accumulate(delta Matrix) Matrix {
	l.costGradientWeights = l.costGradientWeights.Add(delta.Multiply(l.previousInput.Transpose()))
	l.costGradientBiases = l.costGradientBiases.Add(delta)

	return l.weights.Transpose().Multiply(delta)
}

// ApplyGradient subtracts learnRate times the accumulated gradients from the weights and biases.
// The accumulators are left untouched; ClearGradient must follow before the next batch. No batch
// size normalization happens here -- callers fold it into learnRate if per-sample averaging is
// wanted.
func (l *FullyConnectedLayer) ApplyGradient(learnRate float64) {
	l.weights = l.weights.Subtract(l.costGradientWeights.Scale(learnRate))
	l.biases = l.biases.Subtract(l.costGradientBiases.Scale(learnRate))
}

// ClearGradient resets both gradient accumulators to zero matrices of matching shape.
func (l *FullyConnectedLayer) ClearGradient() {
	l.costGradientWeights = NewMatrix(l.weights.rows, l.weights.cols)
	l.costGradientBiases = NewMatrix(l.biases.rows, l.biases.cols)
}
