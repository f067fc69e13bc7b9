package convnet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xorDataset(rng *rand.Rand) *SliceDataset {
	inputs := []Matrix{
		FromData([][]float64{{0}, {0}}),
		FromData([][]float64{{0}, {1}}),
		FromData([][]float64{{1}, {0}}),
		FromData([][]float64{{1}, {1}}),
	}
	outputs := []Matrix{
		FromData([][]float64{{0}}),
		FromData([][]float64{{1}}),
		FromData([][]float64{{1}}),
		FromData([][]float64{{0}}),
	}

	return NewSliceDataset(inputs, outputs, rng)
}

func TestTrainXORCostTrendsDownward(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	net := NewNetwork([]Layer{
		NewFullyConnectedLayer(2, 3, Sigmoid, rng),
		NewFullyConnectedLayer(3, 1, Sigmoid, rng),
	}, MSE, false)

	const epochs = 5000

	costs := make([]float64, 0, epochs)
	err := net.Train(TrainArgs{
		Dataset:      xorDataset(rng),
		LearningRate: 0.5,
		MaxEpochs:    epochs,
		BatchSize:    1,
		Update:       func(r Result) { costs = append(costs, r.Cost) },
	})
	require.NoError(t, err)
	require.Len(t, costs, epochs)

	// Individual batches are noisy; require a downward trend between the first and last
	// tenth of the run rather than strict monotonicity.
	window := epochs / 10
	early := mean(costs[:window])
	late := mean(costs[epochs-window:])

	assert.Less(t, late, early, "average cost did not decrease (early %g, late %g)", early, late)
	assert.Less(t, late, 0.1, "network failed to learn XOR (final cost %g)", late)
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

func TestTrainStopsAtTargetCost(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	net := NewNetwork([]Layer{
		NewFullyConnectedLayer(2, 1, Sigmoid, rng),
	}, MSE, false)

	var epochs int
	err := net.Train(TrainArgs{
		Dataset:      xorDataset(rng),
		LearningRate: 0.1,
		MaxEpochs:    100,
		BatchSize:    2,
		TargetCost:   1000, // any epoch's cost is below this
		Update:       func(r Result) { epochs = r.Epoch },
	})
	require.NoError(t, err)

	assert.Equal(t, 1, epochs, "training should stop after the first epoch")
}

func TestTrainArgValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(15))
	net := NewNetwork([]Layer{
		NewFullyConnectedLayer(2, 1, Sigmoid, rng),
	}, MSE, false)

	err := net.Train(TrainArgs{LearningRate: 0.1, MaxEpochs: 1, BatchSize: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dataset is nil")

	err = net.Train(TrainArgs{Dataset: xorDataset(rng), MaxEpochs: 1, BatchSize: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch size")
}

func TestTrainAugmentHook(t *testing.T) {
	rng := rand.New(rand.NewSource(16))
	ds := xorDataset(rng)

	countingAugment := func(calls *int) func(Matrix) Matrix {
		return func(m Matrix) Matrix {
			*calls++
			return m
		}
	}

	t.Run("applied when allowed", func(t *testing.T) {
		net := NewNetwork([]Layer{
			NewFullyConnectedLayer(2, 1, Sigmoid, rng),
		}, MSE, true)

		var calls int
		require.NoError(t, net.Train(TrainArgs{
			Dataset:      ds,
			LearningRate: 0.1,
			MaxEpochs:    2,
			BatchSize:    4,
			Augment:      countingAugment(&calls),
		}))

		assert.Equal(t, 2*ds.Size(), calls)
	})

	t.Run("skipped when disallowed", func(t *testing.T) {
		net := NewNetwork([]Layer{
			NewFullyConnectedLayer(2, 1, Sigmoid, rng),
		}, MSE, false)

		var calls int
		require.NoError(t, net.Train(TrainArgs{
			Dataset:      ds,
			LearningRate: 0.1,
			MaxEpochs:    2,
			BatchSize:    4,
			Augment:      countingAugment(&calls),
		}))

		assert.Zero(t, calls)
	})
}

func TestTestReportsAccuracy(t *testing.T) {
	// A frozen 2×2 identity-style layer predicts whichever input element is larger, so a
	// dataset whose labels agree with the argmax of the input scores 100%.
	l := LoadFullyConnectedLayer(FromData([][]float64{{5, 0}, {0, 5}}), NewMatrix(2, 1), Sigmoid)
	net := NewNetwork([]Layer{l}, MSE, false)

	rng := rand.New(rand.NewSource(17))
	inputs := []Matrix{
		FromData([][]float64{{1}, {0}}),
		FromData([][]float64{{0}, {1}}),
		FromData([][]float64{{0.9}, {0.1}}),
	}
	outputs := []Matrix{
		FromData([][]float64{{1}, {0}}),
		FromData([][]float64{{0}, {1}}),
		FromData([][]float64{{1}, {0}}),
	}

	accuracy, err := net.Test(NewSliceDataset(inputs, outputs, rng))
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	// Flipping one label drops accuracy to 2/3.
	outputs[2] = FromData([][]float64{{0}, {1}})
	accuracy, err = net.Test(NewSliceDataset(inputs, outputs, rng))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, accuracy, tolerance)
}

func TestTestValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(18))
	net := NewNetwork([]Layer{
		NewFullyConnectedLayer(2, 1, Sigmoid, rng),
	}, MSE, false)

	_, err := net.Test(nil)
	require.Error(t, err)
}
