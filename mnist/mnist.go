package mnist

import (
	"bufio"
	"encoding/binary"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	"github.com/Brae2357/convnet"
)

const (
	imageMagicNumber int32 = 0x00000803
	labelMagicNumber int32 = 0x00000801
	imageRows              = 28
	imageCols              = 28
	numClasses             = 10
)

// Load reads an MNIST image file and its matching label file, returning a dataset of 28×28
// matrices normalized to [0,1] paired with 10×1 one-hot labels. The generator drives the
// dataset's shuffling. Magic numbers, image dimensions, and the image/label count agreement are
// all validated; any mismatch fails the load.
func Load(imagePath, labelPath string, rng *rand.Rand) (*convnet.SliceDataset, error) {
	images, err := loadImages(imagePath)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load images from %s", imagePath)
	}

	labels, err := loadLabels(labelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load labels from %s", labelPath)
	}

	if len(images) != len(labels) {
		return nil, errors.Errorf("image count (%d) does not match label count (%d)", len(images), len(labels))
	}

	return convnet.NewSliceDataset(images, labels, rng), nil
}

// LoadTraining loads the 60,000-sample training set from dir.
func LoadTraining(dir string, rng *rand.Rand) (*convnet.SliceDataset, error) {
	return Load(dir+"/"+TrainImagesFile, dir+"/"+TrainLabelsFile, rng)
}

// LoadTest loads the 10,000-sample test set from dir.
func LoadTest(dir string, rng *rand.Rand) (*convnet.SliceDataset, error) {
	return Load(dir+"/"+TestImagesFile, dir+"/"+TestLabelsFile, rng)
}

// loadImages decodes an IDX image file: a 4-byte magic number (0x00000803), a 4-byte image
// count, 4-byte row and column counts, then one unsigned byte per pixel. All fields are
// big-endian. Pixels are normalized from [0,255] to [0,1].
func loadImages(path string) ([]convnet.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic, numImages, rows, cols int32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrapf(err, "couldn't read header")
	}
	if magic != imageMagicNumber {
		return nil, errors.Errorf("invalid image file: incorrect magic number 0x%X", magic)
	}
	if err := binary.Read(r, binary.BigEndian, &numImages); err != nil {
		return nil, errors.Wrapf(err, "couldn't read image count")
	}
	if err := binary.Read(r, binary.BigEndian, &rows); err != nil {
		return nil, errors.Wrapf(err, "couldn't read row count")
	}
	if err := binary.Read(r, binary.BigEndian, &cols); err != nil {
		return nil, errors.Wrapf(err, "couldn't read column count")
	}
	if rows != imageRows || cols != imageCols {
		return nil, errors.Errorf("unexpected image dimensions: %dx%d", rows, cols)
	}

	images := make([]convnet.Matrix, 0, numImages)
	buf := make([]byte, rows*cols)
	for i := int32(0); i < numImages; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(err, "couldn't read image %d", i)
		}

		pixelData := make([][]float64, rows)
		for row := int32(0); row < rows; row++ {
			pixelData[row] = make([]float64, cols)
			for col := int32(0); col < cols; col++ {
				pixelData[row][col] = float64(buf[row*cols+col]) / 255.0
			}
		}

		images = append(images, convnet.FromData(pixelData))
	}

	return images, nil
}

// loadLabels decodes an IDX label file: a 4-byte magic number (0x00000801), a 4-byte label
// count, then one byte per label in [0,9]. Labels come back one-hot encoded as 10×1 matrices.
func loadLabels(path string) ([]convnet.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic, numLabels int32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrapf(err, "couldn't read header")
	}
	if magic != labelMagicNumber {
		return nil, errors.Errorf("invalid label file: incorrect magic number 0x%X", magic)
	}
	if err := binary.Read(r, binary.BigEndian, &numLabels); err != nil {
		return nil, errors.Wrapf(err, "couldn't read label count")
	}

	labels := make([]convnet.Matrix, 0, numLabels)
	buf := make([]byte, 1)
	for i := int32(0); i < numLabels; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(err, "couldn't read label %d", i)
		}
		if buf[0] >= numClasses {
			return nil, errors.Errorf("label %d out of range: %d", i, buf[0])
		}

		oneHot := make([][]float64, numClasses)
		for row := range oneHot {
			oneHot[row] = make([]float64, 1)
		}
		oneHot[buf[0]][0] = 1.0

		labels = append(labels, convnet.FromData(oneHot))
	}

	return labels, nil
}
