package convnet

import (
	"math"

	"github.com/pkg/errors"
)

// Result is a wrapper for sending back the progress of a training run, once per epoch.
type Result struct {
	// The epoch the result describes, starting at 1.
	Epoch int

	// Average cost across the epoch's batches, from the Network's CostFunction.
	Cost float64
}

// TrainArgs carries everything Train needs beyond the Network itself.
type TrainArgs struct {
	// Dataset is the source of training samples. It must not be nil.
	Dataset Dataset

	// LearningRate scales the accumulated gradients at the end of each batch. Gradient
	// application does not divide by batch size, so a caller that wants per-sample averaging
	// should divide the rate by BatchSize here.
	LearningRate float64

	// MaxEpochs bounds the number of passes over the dataset. Ignored if Continuous is set.
	MaxEpochs int

	// BatchSize is the number of samples accumulated before each gradient application.
	BatchSize int

	// TargetCost stops training early once the epoch's average cost falls to or below it.
	// A value <= 0 disables cost-based termination.
	TargetCost float64

	// Continuous trains forever, overriding MaxEpochs and TargetCost. Useful when an external
	// caller decides when to stop.
	Continuous bool

	// Augment, if non-nil and the Network allows augmenting, perturbs each training input
	// before the forward pass. Evaluation never augments.
	Augment func(Matrix) Matrix

	// Update is called with a Result after each epoch. May be nil.
	Update func(Result)
}

// Train runs mini-batch stochastic gradient descent: each epoch shuffles the dataset, draws
// batches until exhausted, accumulates per-sample gradients through a forward and backward pass,
// and applies then clears each adjustable layer's gradients at every batch boundary. Training
// stops when MaxEpochs passes have run or the epoch's average cost reaches TargetCost, whichever
// comes first -- or never, if Continuous is set.
func (net *Network) Train(args TrainArgs) error {
	if args.Dataset == nil {
		return errors.Errorf("Dataset is nil")
	} else if args.BatchSize < 1 {
		return errors.Errorf("batch size must be >= 1 (%d)", args.BatchSize)
	} else if args.Dataset.Size() == 0 {
		return errors.Errorf("dataset has no data")
	}

	if args.Update == nil {
		args.Update = func(r Result) {}
	}

	currentCost := math.Inf(1)

	for epoch := 1; args.Continuous || (epoch <= args.MaxEpochs && (args.TargetCost <= 0 || currentCost > args.TargetCost)); epoch++ {
		args.Dataset.Shuffle()

		var totalCost float64
		var numBatches int

		for args.Dataset.HasNextBatch() {
			inputs, outputs, ok := args.Dataset.NextBatch(args.BatchSize)
			if !ok {
				break
			}

			for i := range inputs {
				input := inputs[i]
				if net.allowAugmenting && args.Augment != nil {
					input = args.Augment(input)
				}

				predicted := net.Predict(input)
				totalCost += net.costFunction.Cost(predicted, outputs[i])
				net.backward(predicted, outputs[i])
			}

			for _, l := range net.layers {
				if adj, ok := l.(Adjustable); ok {
					adj.ApplyGradient(args.LearningRate)
					adj.ClearGradient()
				}
			}

			numBatches++
		}

		currentCost = totalCost / float64(numBatches)
		args.Update(Result{Epoch: epoch, Cost: currentCost})
	}

	return nil
}

// Test runs every sample of the dataset through the Network and reports the fraction whose top-1
// prediction matches the expected one-hot label.
func (net *Network) Test(dataset Dataset) (float64, error) {
	if dataset == nil {
		return 0, errors.Errorf("Dataset is nil")
	} else if dataset.Size() == 0 {
		return 0, errors.Errorf("dataset has no data")
	}

	var numCorrect int
	for i := 0; i < dataset.Size(); i++ {
		predicted := net.Predict(dataset.DataAt(i))

		predictedLabel := predicted.SortFlattenedByIndex()[0]
		expectedLabel := dataset.OutputAt(i).Flatten().SortFlattenedByIndex()[0]

		if predictedLabel == expectedLabel {
			numCorrect++
		}
	}

	return float64(numCorrect) / float64(dataset.Size()), nil
}
