// Package convnet implements a from-scratch feed-forward neural network trainer: dense matrix
// algebra, fully-connected layers with hand-derived gradients, a small family of cost functions,
// and mini-batch stochastic gradient descent. It is built for classifying fixed-size grayscale
// images (such as 28×28 digit bitmaps) into a small label set.
//
// Creating Networks
//
// A Network is an ordered stack of Layers plus a CostFunction:
//
//	rng := rand.New(rand.NewSource(0))
//	net := convnet.NewNetwork([]convnet.Layer{
//		convnet.NewFullyConnectedLayer(784, 256, convnet.Sigmoid, rng),
//		convnet.NewFullyConnectedLayer(256, 128, convnet.Sigmoid, rng),
//		convnet.NewFullyConnectedLayer(128, 10, convnet.Softmax, rng),
//	}, convnet.CrossEntropy, true)
//
// Random initialization and dataset shuffling take an explicit *rand.Rand so runs can be made
// reproducible by seeding.
//
// Training and Testing
//
// Training uses the type TrainArgs as a proxy for the optional arguments available in other
// languages:
//
//	err := net.Train(convnet.TrainArgs{
//		Dataset:      dataset,
//		LearningRate: 0.01,
//		MaxEpochs:    20,
//		BatchSize:    64,
//	})
//
// Testing reports top-1 accuracy over a Dataset:
//
//	accuracy, err := net.Test(dataset)
//
// Saving and Loading
//
// Networks persist to a compact little-endian binary format (see Save for the layout):
//
//	err := net.SaveFile("digits.cnn")
//	net, err := convnet.LoadFile("digits.cnn")
//
// The subpackage mnist downloads and decodes the MNIST dataset; the subpackage augment applies
// random affine perturbations to training images.
//
// Everything in this package assumes a single active caller per Network; nothing is synchronized
// internally.
package convnet
