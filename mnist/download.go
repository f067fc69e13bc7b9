// Package mnist downloads and decodes the MNIST handwritten digit dataset into convnet matrices.
package mnist

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const baseURL = "https://storage.googleapis.com/cvdf-datasets/mnist/"

// File names of the four dataset pieces, as they appear both remotely (with a .gz suffix) and on
// disk after extraction.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Download fetches the four MNIST files into dir, creating it if necessary. Files that already
// exist are skipped, so repeated calls are cheap. Each file is downloaded gzip-compressed,
// extracted, and the compressed copy removed.
func Download(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "couldn't create dataset directory %s", dir)
	}

	for _, name := range []string{TrainImagesFile, TrainLabelsFile, TestImagesFile, TestLabelsFile} {
		if err := downloadAndExtract(baseURL+name+".gz", filepath.Join(dir, name)); err != nil {
			return errors.Wrapf(err, "couldn't fetch %s", name)
		}
	}

	return nil
}

func downloadAndExtract(url, outputFile string) error {
	if _, err := os.Stat(outputFile); err == nil {
		fmt.Printf("%s already exists, download skipped.\n", outputFile)
		return nil
	}

	compressedFile := outputFile + ".gz"

	fmt.Printf("Downloading %s\n", url)
	if err := downloadFile(url, compressedFile); err != nil {
		return err
	}

	if err := extractGzip(compressedFile, outputFile); err != nil {
		return err
	}

	// Keep only the extracted copy.
	return os.Remove(compressedFile)
}

func downloadFile(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return errors.Wrapf(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", path)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.Wrapf(err, "couldn't write %s", path)
	}

	return nil
}

func extractGzip(compressedFile, outputFile string) error {
	in, err := os.Open(compressedFile)
	if err != nil {
		return errors.Wrapf(err, "couldn't open %s", compressedFile)
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return errors.Wrapf(err, "couldn't decompress %s", compressedFile)
	}
	defer gz.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", outputFile)
	}
	defer out.Close()

	if _, err := io.Copy(out, gz); err != nil {
		return errors.Wrapf(err, "couldn't extract %s", compressedFile)
	}

	return nil
}
