package convnet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeledDataset(t *testing.T, size int) *SliceDataset {
	t.Helper()

	data := make([]Matrix, size)
	outputs := make([]Matrix, size)
	for i := range data {
		// Encode the sample index in the input so tests can track pairs through shuffles.
		data[i] = FromData([][]float64{{float64(i)}})
		outputs[i] = FromData([][]float64{{float64(i)}})
	}

	return NewSliceDataset(data, outputs, rand.New(rand.NewSource(8)))
}

func TestShuffleIsPermutation(t *testing.T) {
	ds := labeledDataset(t, 10)
	ds.Shuffle()

	seen := make(map[float64]bool)
	for ds.HasNextBatch() {
		inputs, outputs, ok := ds.NextBatch(3)
		require.True(t, ok)

		for i := range inputs {
			v := inputs[i].At(0, 0)
			assert.False(t, seen[v], "sample %v drawn twice", v)
			seen[v] = true

			// Input/output pairing survives the shuffle.
			assert.Equal(t, v, outputs[i].At(0, 0))
		}
	}

	assert.Len(t, seen, 10)
}

func TestNextBatchPartialFinalBatch(t *testing.T) {
	ds := labeledDataset(t, 10)
	ds.Shuffle()

	sizes := []int{}
	for ds.HasNextBatch() {
		inputs, _, ok := ds.NextBatch(4)
		require.True(t, ok)
		sizes = append(sizes, len(inputs))
	}

	assert.Equal(t, []int{4, 4, 2}, sizes)
}

func TestNextBatchExhaustedSentinel(t *testing.T) {
	ds := labeledDataset(t, 2)
	ds.Shuffle()

	_, _, ok := ds.NextBatch(5)
	require.True(t, ok)

	inputs, outputs, ok := ds.NextBatch(5)
	assert.False(t, ok)
	assert.Nil(t, inputs)
	assert.Nil(t, outputs)

	// Shuffling resets the cursor.
	ds.Shuffle()
	assert.True(t, ds.HasNextBatch())
}

func TestIndexedAccessIgnoresShuffle(t *testing.T) {
	ds := labeledDataset(t, 5)
	require.Equal(t, 5, ds.Size())

	for i := 0; i < ds.Size(); i++ {
		assert.Equal(t, float64(i), ds.DataAt(i).At(0, 0))
		assert.Equal(t, float64(i), ds.OutputAt(i).At(0, 0))
	}

	ds.Shuffle()
	assert.Equal(t, 3.0, ds.DataAt(3).At(0, 0))
}

func TestNewSliceDatasetLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		NewSliceDataset(make([]Matrix, 2), make([]Matrix, 3), rand.New(rand.NewSource(9)))
	})
}
