package convnet

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// magicNumber identifies the model file format; "CNN" in hex.
const magicNumber int32 = 0x434E4E

// byteOrder is the byte order of every numeric field in the model format.
var byteOrder = binary.LittleEndian

// Save writes the Network to w in the binary model format:
//
//	[int32] magic number
//	[int32] number of layers
//	[int32] cost function index
//	[bool]  data augmentation allowed
//
//	each layer:
//	[int32] layer type index
//
//	fully connected layer:
//	[int32] number of input nodes
//	[int32] number of output nodes
//	[int32] activation function index
//	[numOutputs × numInputs float64] weights, row-major
//	[numOutputs float64] biases
//
// All numeric fields are little-endian.
func (net *Network) Save(w io.Writer) error {
	header := []interface{}{
		magicNumber,
		int32(len(net.layers)),
		int32(net.costFunction),
		net.allowAugmenting,
	}

	for _, field := range header {
		if err := binary.Write(w, byteOrder, field); err != nil {
			return errors.Wrapf(err, "couldn't write model header")
		}
	}

	for i, l := range net.layers {
		if err := binary.Write(w, byteOrder, int32(l.Type())); err != nil {
			return errors.Wrapf(err, "couldn't write type of layer %d", i)
		}

		fc, ok := l.(*FullyConnectedLayer)
		if !ok {
			return errors.Errorf("layer %d has unsupported type %v", i, l.Type())
		}

		if err := writeFCLayer(w, fc); err != nil {
			return errors.Wrapf(err, "couldn't write layer %d", i)
		}
	}

	return nil
}

// SaveFile saves the Network to the file at path, creating or truncating it.
func (net *Network) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create model file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := net.Save(w); err != nil {
		return err
	}

	return w.Flush()
}

// Load reads a Network previously written by Save. A mismatched magic number, an out-of-range
// enum index, or a truncated payload all fail the load; nothing is silently patched.
func Load(r io.Reader) (*Network, error) {
	var magic int32
	if err := binary.Read(r, byteOrder, &magic); err != nil {
		return nil, errors.Wrapf(err, "couldn't read model header")
	}
	if magic != magicNumber {
		return nil, errors.Errorf("invalid model file: incorrect magic number 0x%X", magic)
	}

	var numLayers, costIndex int32
	var allowAugmenting bool
	if err := binary.Read(r, byteOrder, &numLayers); err != nil {
		return nil, errors.Wrapf(err, "couldn't read layer count")
	}
	if err := binary.Read(r, byteOrder, &costIndex); err != nil {
		return nil, errors.Wrapf(err, "couldn't read cost function")
	}
	if err := binary.Read(r, byteOrder, &allowAugmenting); err != nil {
		return nil, errors.Wrapf(err, "couldn't read augmentation flag")
	}

	if numLayers < 0 {
		return nil, errors.Errorf("invalid model file: negative layer count %d", numLayers)
	}
	if costIndex < int32(MSE) || costIndex > int32(MAE) {
		return nil, errors.Errorf("invalid model file: unknown cost function index %d", costIndex)
	}

	layers := make([]Layer, numLayers)
	for i := range layers {
		var layerType int32
		if err := binary.Read(r, byteOrder, &layerType); err != nil {
			return nil, errors.Wrapf(err, "couldn't read type of layer %d", i)
		}

		if LayerType(layerType) != FullyConnected {
			return nil, errors.Errorf("invalid model file: unknown layer type index %d", layerType)
		}

		fc, err := readFCLayer(r)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't read layer %d", i)
		}

		layers[i] = fc
	}

	return NewNetwork(layers, CostFunction(costIndex), allowAugmenting), nil
}

// LoadFile loads a Network from the file at path.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open model file %s", path)
	}
	defer f.Close()

	return Load(bufio.NewReader(f))
}

func writeFCLayer(w io.Writer, fc *FullyConnectedLayer) error {
	fields := []interface{}{
		int32(fc.NumInputs()),
		int32(fc.NumOutputs()),
		int32(fc.ActivationFunction()),
	}

	for _, field := range fields {
		if err := binary.Write(w, byteOrder, field); err != nil {
			return err
		}
	}

	weights := fc.Weights()
	for row := 0; row < weights.Rows(); row++ {
		for col := 0; col < weights.Cols(); col++ {
			if err := binary.Write(w, byteOrder, weights.At(row, col)); err != nil {
				return err
			}
		}
	}

	biases := fc.Biases()
	for row := 0; row < biases.Rows(); row++ {
		if err := binary.Write(w, byteOrder, biases.At(row, 0)); err != nil {
			return err
		}
	}

	return nil
}

func readFCLayer(r io.Reader) (*FullyConnectedLayer, error) {
	var numInputs, numOutputs, activationIndex int32
	if err := binary.Read(r, byteOrder, &numInputs); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &numOutputs); err != nil {
		return nil, err
	}
	if err := binary.Read(r, byteOrder, &activationIndex); err != nil {
		return nil, err
	}

	if numInputs < 1 || numOutputs < 1 {
		return nil, errors.Errorf("layer dimensions out of range: %d inputs, %d outputs", numInputs, numOutputs)
	}
	if activationIndex < int32(LeakyReLU) || activationIndex > int32(Softmax) {
		return nil, errors.Errorf("unknown activation function index %d", activationIndex)
	}

	weightData := make([][]float64, numOutputs)
	for row := range weightData {
		weightData[row] = make([]float64, numInputs)
		for col := range weightData[row] {
			if err := binary.Read(r, byteOrder, &weightData[row][col]); err != nil {
				return nil, errors.Wrapf(err, "couldn't read weights")
			}
		}
	}

	biasData := make([][]float64, numOutputs)
	for row := range biasData {
		biasData[row] = make([]float64, 1)
		if err := binary.Read(r, byteOrder, &biasData[row][0]); err != nil {
			return nil, errors.Wrapf(err, "couldn't read biases")
		}
	}

	return LoadFullyConnectedLayer(FromData(weightData), FromData(biasData), Activation(activationIndex)), nil
}
