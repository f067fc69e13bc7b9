package convnet

// LayerType identifies the concrete kind of a Layer. The numeric values are persisted in saved
// models and must not be reordered.
type LayerType int32

const (
	// FullyConnected is the only layer type implemented today. Convolutional and pooling types
	// would extend this enumeration.
	FullyConnected LayerType = iota
)

// String returns the name of the layer type.
func (t LayerType) String() string {
	switch t {
	case FullyConnected:
		return "fully-connected"
	default:
		return "unknown"
	}
}

// Layer is the capability shared by every kind of network layer: a forward transform, a backward
// gradient computation, and its input/output dimensions. Layers are stateful -- Forward caches
// what Backward later needs -- so a Layer must not be shared between Networks or called from more
// than one goroutine.
type Layer interface {
	// Forward computes the layer's output for the given input.
	Forward(input Matrix) Matrix

	// Backward consumes the gradient of the cost with respect to this layer's output,
	// accumulates the gradients of the layer's own parameters, and returns the gradient with
	// respect to the layer's input for the previous layer to consume.
	Backward(outputGradient Matrix) Matrix

	// NumInputs returns the number of input values the layer expects.
	NumInputs() int

	// NumOutputs returns the number of values the layer produces.
	NumOutputs() int

	// Type returns the layer's persisted type tag.
	Type() LayerType
}

// Adjustable is implemented by layers that own trainable parameters. The training loop asserts
// it on each Layer after a batch: ApplyGradient followed immediately by ClearGradient.
type Adjustable interface {
	// ApplyGradient subtracts learnRate times the accumulated gradients from the layer's
	// parameters. It does not normalize by batch size; a caller that wants per-sample averaging
	// must fold the batch size into learnRate.
	ApplyGradient(learnRate float64)

	// ClearGradient resets the gradient accumulators to zero. It must be called after every
	// ApplyGradient, before the next batch begins.
	ClearGradient()
}
