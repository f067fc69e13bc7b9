package convnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSECost(t *testing.T) {
	predicted := FromData([][]float64{{1}, {0}, {0.5}})
	expected := FromData([][]float64{{0}, {0}, {0.5}})

	// (1 + 0 + 0) / 3
	assert.InDelta(t, 1.0/3.0, MSE.Cost(predicted, expected), tolerance)
}

func TestMSEDerivative(t *testing.T) {
	predicted := FromData([][]float64{{1}, {0.5}})
	expected := FromData([][]float64{{0}, {0.5}})

	// 2·(p-e)/(rows·cols), normalized by the total element count.
	grad := MSE.Derivative(predicted, expected)
	assert.InDelta(t, 1.0, grad.At(0, 0), tolerance)
	assert.InDelta(t, 0.0, grad.At(1, 0), tolerance)
}

func TestCrossEntropyCost(t *testing.T) {
	predicted := FromData([][]float64{{0.9}, {0.1}})
	expected := FromData([][]float64{{1}, {0}})

	want := -(math.Log(0.9) + math.Log(0.9)) / 2
	assert.InDelta(t, want, CrossEntropy.Cost(predicted, expected), 1e-9)
}

func TestCrossEntropyClampsDegenerateInputs(t *testing.T) {
	// Exact 0 and 1 predictions would hit ln(0) and division by zero without the clamp. Both
	// the cost and every gradient element must stay finite.
	predicted := FromData([][]float64{{0}, {1}})
	expected := FromData([][]float64{{1}, {0}})

	cost := CrossEntropy.Cost(predicted, expected)
	require.False(t, math.IsInf(cost, 0), "cost is infinite")
	require.False(t, math.IsNaN(cost), "cost is NaN")

	grad := CrossEntropy.Derivative(predicted, expected)
	for row := 0; row < grad.Rows(); row++ {
		v := grad.At(row, 0)
		require.False(t, math.IsInf(v, 0), "gradient element %d is infinite", row)
		require.False(t, math.IsNaN(v), "gradient element %d is NaN", row)
	}
}

func TestMAECost(t *testing.T) {
	predicted := FromData([][]float64{{1}, {-1}, {0.5}})
	expected := FromData([][]float64{{0}, {0}, {0.5}})

	assert.InDelta(t, 2.0/3.0, MAE.Cost(predicted, expected), tolerance)
}

func TestMAEDerivative(t *testing.T) {
	predicted := FromData([][]float64{{1}, {-1}, {0.5}})
	expected := FromData([][]float64{{0}, {0}, {0.5}})

	grad := MAE.Derivative(predicted, expected)
	assert.InDelta(t, 1.0/3.0, grad.At(0, 0), tolerance)
	assert.InDelta(t, -1.0/3.0, grad.At(1, 0), tolerance)
	// A zero difference resolves toward the negative sign.
	assert.InDelta(t, -1.0/3.0, grad.At(2, 0), tolerance)
}

func TestCostFunctionShapeGuards(t *testing.T) {
	a := NewMatrix(2, 1)
	b := NewMatrix(3, 1)

	for _, cf := range []CostFunction{MSE, CrossEntropy, MAE} {
		t.Run(cf.String(), func(t *testing.T) {
			require.Panics(t, func() { cf.Cost(a, b) })
			require.Panics(t, func() { cf.Derivative(a, b) })
		})
	}
}

func TestDerivativeShapeMatchesInputs(t *testing.T) {
	predicted := FromData([][]float64{{0.2, 0.8}, {0.6, 0.4}})
	expected := FromData([][]float64{{0, 1}, {1, 0}})

	for _, cf := range []CostFunction{MSE, CrossEntropy, MAE} {
		grad := cf.Derivative(predicted, expected)
		assert.Equal(t, predicted.Rows(), grad.Rows())
		assert.Equal(t, predicted.Cols(), grad.Cols())
	}
}
