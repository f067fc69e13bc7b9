package convnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivationApply(t *testing.T) {
	tests := []struct {
		name string
		fn   Activation
		x    float64
		want float64
	}{
		{"relu positive", ReLU, 2.5, 2.5},
		{"relu negative", ReLU, -1.0, 0},
		{"relu zero", ReLU, 0, 0},
		{"leaky relu positive", LeakyReLU, 2.5, 2.5},
		{"leaky relu negative", LeakyReLU, -2.0, -0.02},
		{"sigmoid zero", Sigmoid, 0, 0.5},
		{"sigmoid large", Sigmoid, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn.Apply(tt.x), 1e-9)
		})
	}
}

func TestActivationDerivative(t *testing.T) {
	tests := []struct {
		name string
		fn   Activation
		x    float64
		want float64
	}{
		{"relu positive", ReLU, 3.0, 1},
		{"relu negative", ReLU, -3.0, 0},
		{"leaky relu positive", LeakyReLU, 3.0, 1},
		{"leaky relu negative", LeakyReLU, -3.0, 0.01},
		{"sigmoid zero", Sigmoid, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn.Derivative(tt.x), 1e-9)
		})
	}
}

func TestSoftmaxScalarPanics(t *testing.T) {
	require.PanicsWithError(t, ErrScalarSoftmax.Error(), func() {
		Softmax.Apply(1.0)
	})
	require.PanicsWithError(t, ErrScalarSoftmaxDerivative.Error(), func() {
		Softmax.Derivative(1.0)
	})
}

func TestActivateRejectsSoftmax(t *testing.T) {
	m := NewMatrix(2, 1)

	require.PanicsWithError(t, ErrScalarSoftmax.Error(), func() {
		m.Activate(Softmax)
	})
	require.PanicsWithError(t, ErrScalarSoftmaxDerivative.Error(), func() {
		m.ActivationDerivative(Softmax)
	})
}
