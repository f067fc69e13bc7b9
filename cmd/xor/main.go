// Command xor trains a tiny 2-3-1 sigmoid network on the XOR function, the classic smoke test
// for a backpropagation implementation, then round-trips the model through a file.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Brae2357/convnet"
)

const (
	learningRate = 0.5
	maxEpochs    = 5000
	batchSize    = 4
	statusEvery  = 500
)

func dataset(rng *rand.Rand) *convnet.SliceDataset {
	inputs := []convnet.Matrix{
		convnet.FromData([][]float64{{0}, {0}}),
		convnet.FromData([][]float64{{0}, {1}}),
		convnet.FromData([][]float64{{1}, {0}}),
		convnet.FromData([][]float64{{1}, {1}}),
	}
	outputs := []convnet.Matrix{
		convnet.FromData([][]float64{{0}}),
		convnet.FromData([][]float64{{1}}),
		convnet.FromData([][]float64{{1}}),
		convnet.FromData([][]float64{{0}}),
	}

	return convnet.NewSliceDataset(inputs, outputs, rng)
}

func main() {
	seed := flag.Int64("seed", 0, "seed for weights and shuffling")
	path := flag.String("model", "xor.cnn", "where to save the trained network")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	fmt.Print("Setting up network...")
	net := convnet.NewNetwork([]convnet.Layer{
		convnet.NewFullyConnectedLayer(2, 3, convnet.Sigmoid, rng),
		convnet.NewFullyConnectedLayer(3, 1, convnet.Sigmoid, rng),
	}, convnet.MSE, false)
	fmt.Println(" Done!")

	fmt.Println("Starting training...")
	err := net.Train(convnet.TrainArgs{
		Dataset:      dataset(rng),
		LearningRate: learningRate,
		MaxEpochs:    maxEpochs,
		BatchSize:    batchSize,
		Update: func(r convnet.Result) {
			if r.Epoch%statusEvery == 0 {
				fmt.Printf("Epoch %d: average cost %g\n", r.Epoch, r.Cost)
			}
		},
	})
	if err != nil {
		fail(err)
	}
	fmt.Println("Done training!")

	for _, pair := range [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		in := convnet.FromData([][]float64{{pair[0]}, {pair[1]}})
		out := net.Predict(in)
		fmt.Printf("%v XOR %v -> %.3f\n", pair[0], pair[1], out.At(0, 0))
	}

	fmt.Printf("Saving to %s...", *path)
	if err := net.SaveFile(*path); err != nil {
		fail(err)
	}
	fmt.Println(" Done!")

	reloaded, err := convnet.LoadFile(*path)
	if err != nil {
		fail(err)
	}

	in := convnet.FromData([][]float64{{1}, {0}})
	fmt.Printf("Reloaded model: 1 XOR 0 -> %.3f\n", reloaded.Predict(in).At(0, 0))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
