package convnet

import "math/rand"

// Dataset supplies shuffled mini-batches of (input, expected one-hot output) matrix pairs to the
// training loop, plus indexed access for evaluation.
type Dataset interface {
	// Shuffle reorders the dataset's internal permutation and resets the batch cursor to the
	// beginning.
	Shuffle()

	// HasNextBatch reports whether any data remains in the current pass.
	HasNextBatch() bool

	// NextBatch returns up to batchSize (input, output) pairs, fewer on the final partial
	// batch. Once the pass is exhausted it returns (nil, nil, false).
	NextBatch(batchSize int) (inputs, outputs []Matrix, ok bool)

	// Size returns the number of samples in the dataset.
	Size() int

	// DataAt returns the input matrix at the given index, ignoring the shuffle permutation.
	DataAt(index int) Matrix

	// OutputAt returns the expected output matrix at the given index, ignoring the shuffle
	// permutation.
	OutputAt(index int) Matrix
}

// SliceDataset is the in-memory Dataset implementation: two parallel slices of matrices, a
// shuffled index permutation, and a cursor into it. Construct it with NewSliceDataset.
type SliceDataset struct {
	data    []Matrix
	outputs []Matrix

	shuffledIndices []int
	currentIndex    int
	rng             *rand.Rand
}

// NewSliceDataset wraps parallel input and output slices of equal length. The generator drives
// shuffling and is explicit so tests can seed it. NewSliceDataset shuffles once so the first
// pass is already randomized.
func NewSliceDataset(data, outputs []Matrix, rng *rand.Rand) *SliceDataset {
	if rng == nil {
		panic(NilArgError{"rng"})
	}
	if len(data) != len(outputs) {
		panic(DimensionMismatchError{"dataset construction", len(data), 1, len(outputs), 1})
	}

	ds := &SliceDataset{
		data:    data,
		outputs: outputs,
		rng:     rng,
	}

	ds.Shuffle()
	return ds
}

// Shuffle rebuilds the index permutation with a Fisher-Yates pass and resets the batch cursor.
func (ds *SliceDataset) Shuffle() {
	ds.shuffledIndices = make([]int, len(ds.data))
	for i := range ds.shuffledIndices {
		ds.shuffledIndices[i] = i
	}

	for i := len(ds.shuffledIndices) - 1; i > 0; i-- {
		j := ds.rng.Intn(i + 1)
		ds.shuffledIndices[i], ds.shuffledIndices[j] = ds.shuffledIndices[j], ds.shuffledIndices[i]
	}

	ds.currentIndex = 0
}

// HasNextBatch reports whether any data remains in the current pass.
func (ds *SliceDataset) HasNextBatch() bool {
	return ds.currentIndex < len(ds.data)
}

// NextBatch returns the next batchSize samples in shuffled order. The final batch may hold fewer
// samples; once the pass is exhausted, NextBatch returns (nil, nil, false) until Shuffle is
// called again.
func (ds *SliceDataset) NextBatch(batchSize int) (inputs, outputs []Matrix, ok bool) {
	if ds.currentIndex >= len(ds.data) {
		return nil, nil, false
	}

	for i := 0; i < batchSize && ds.currentIndex < len(ds.data); i++ {
		dataIndex := ds.shuffledIndices[ds.currentIndex]
		inputs = append(inputs, ds.data[dataIndex])
		outputs = append(outputs, ds.outputs[dataIndex])
		ds.currentIndex++
	}

	return inputs, outputs, true
}

// Size returns the number of samples in the dataset.
func (ds *SliceDataset) Size() int {
	return len(ds.data)
}

// DataAt returns the input matrix at the given index, ignoring the shuffle permutation.
func (ds *SliceDataset) DataAt(index int) Matrix {
	return ds.data[index]
}

// OutputAt returns the expected output matrix at the given index, ignoring the shuffle
// permutation.
func (ds *SliceDataset) OutputAt(index int) Matrix {
	return ds.outputs[index]
}
