// Command mnist trains a digit classifier on the MNIST dataset, evaluates it, and saves the
// model. Run with -h for the available knobs.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Brae2357/convnet"
	"github.com/Brae2357/convnet/augment"
	"github.com/Brae2357/convnet/mnist"
)

func main() {
	var (
		dataDir      = flag.String("data", "mnist_data", "directory holding (or receiving) the MNIST files")
		modelPath    = flag.String("model", "digits.cnn", "path to save the trained model")
		loadPath     = flag.String("load", "", "path of an existing model to continue training from")
		learningRate = flag.Float64("rate", 0.01, "learning rate")
		maxEpochs    = flag.Int("epochs", 20, "maximum number of training epochs")
		batchSize    = flag.Int("batch", 64, "mini-batch size")
		targetCost   = flag.Float64("target", 0.01, "stop once the average epoch cost reaches this (<= 0 to disable)")
		augmenting   = flag.Bool("augment", true, "randomly perturb training images")
		seed         = flag.Int64("seed", 0, "seed for weights and shuffling (0 uses a fixed default)")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	fmt.Print("Fetching MNIST dataset...")
	if err := mnist.Download(*dataDir); err != nil {
		fail(err)
	}
	fmt.Println(" Done!")

	fmt.Print("Loading training and testing data...")
	train, err := mnist.LoadTraining(*dataDir, rng)
	if err != nil {
		fail(err)
	}
	test, err := mnist.LoadTest(*dataDir, rng)
	if err != nil {
		fail(err)
	}
	fmt.Println(" Done!")

	var net *convnet.Network
	if *loadPath != "" {
		fmt.Printf("Loading network from %s...", *loadPath)
		if net, err = convnet.LoadFile(*loadPath); err != nil {
			fail(err)
		}
		fmt.Println(" Done!")
	} else {
		fmt.Print("Setting up network...")
		net = convnet.NewNetwork([]convnet.Layer{
			convnet.NewFullyConnectedLayer(784, 256, convnet.Sigmoid, rng),
			convnet.NewFullyConnectedLayer(256, 128, convnet.Sigmoid, rng),
			convnet.NewFullyConnectedLayer(128, 10, convnet.Softmax, rng),
		}, convnet.CrossEntropy, *augmenting)
		fmt.Println(" Done!")
	}

	fmt.Printf("Starting training for up to %d epochs...\n", *maxEpochs)
	err = net.Train(convnet.TrainArgs{
		Dataset:      train,
		LearningRate: *learningRate,
		MaxEpochs:    *maxEpochs,
		BatchSize:    *batchSize,
		TargetCost:   *targetCost,
		Augment: func(m convnet.Matrix) convnet.Matrix {
			return augment.Augment(m, rng)
		},
		Update: func(r convnet.Result) {
			fmt.Printf("Epoch %d: average cost %g\n", r.Epoch, r.Cost)
		},
	})
	if err != nil {
		fail(err)
	}
	fmt.Println("Done training!")

	fmt.Print("Testing...")
	accuracy, err := net.Test(test)
	if err != nil {
		fail(err)
	}
	fmt.Printf(" Done! Accuracy: %.2f%%\n", accuracy*100)

	fmt.Printf("Saving network to %s...", *modelPath)
	if err := net.SaveFile(*modelPath); err != nil {
		fail(err)
	}
	fmt.Println(" Done!")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "\n%s\n", err)
	os.Exit(1)
}
