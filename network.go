package convnet

// Network is an ordered sequence of Layers paired with a CostFunction. The first layer consumes
// the (flattened) network input; each subsequent layer consumes the previous layer's output.
// Layers are owned exclusively by one Network, and a Network supports one active caller at a
// time: nothing inside it is synchronized.
type Network struct {
	layers          []Layer
	costFunction    CostFunction
	allowAugmenting bool
}

// NewNetwork assembles a Network from its layers, its cost function, and whether input
// augmentation may be applied during training. NewNetwork panics with type NilArgError if layers
// is nil or contains a nil Layer.
func NewNetwork(layers []Layer, costFunction CostFunction, allowAugmenting bool) *Network {
	if layers == nil {
		panic(NilArgError{"layers"})
	}
	for _, l := range layers {
		if l == nil {
			panic(NilArgError{"layer"})
		}
	}

	return &Network{
		layers:          layers,
		costFunction:    costFunction,
		allowAugmenting: allowAugmenting,
	}
}

// Layers returns the Network's layers in input-to-output order. The slice is a copy; the Layers
// themselves are not.
func (net *Network) Layers() []Layer {
	ls := make([]Layer, len(net.layers))
	copy(ls, net.layers)
	return ls
}

// CostFunction returns the Network's cost function.
func (net *Network) CostFunction() CostFunction {
	return net.costFunction
}

// AllowAugmenting reports whether input augmentation may be applied while training.
func (net *Network) AllowAugmenting() bool {
	return net.allowAugmenting
}

// Predict flattens the input into a column vector and pipes it through each layer's Forward in
// sequence, returning the final activation.
func (net *Network) Predict(input Matrix) Matrix {
	output := input.Flatten()
	for _, l := range net.layers {
		output = l.Forward(output)
	}

	return output
}

// backward walks the layers last-to-first, accumulating parameter gradients along the way. The
// output layer takes the fused path (delta = predicted - expected) when its activation is
// Softmax and the cost is CrossEntropy; otherwise it consumes the cost derivative through the
// ordinary chain-rule path like every hidden layer.
func (net *Network) backward(predicted, expected Matrix) {
	last := net.layers[len(net.layers)-1]

	var gradient Matrix
	if fc, ok := last.(*FullyConnectedLayer); ok && fc.ActivationFunction() == Softmax && net.costFunction == CrossEntropy {
		gradient = fc.BackwardOutput(predicted, expected)
	} else {
		gradient = last.Backward(net.costFunction.Derivative(predicted, expected))
	}

	for i := len(net.layers) - 2; i >= 0; i-- {
		gradient = net.layers[i].Backward(gradient)
	}
}
