// Package augment applies random affine perturbations to grayscale training images, improving a
// network's tolerance to the small variations found in hand-drawn input.
package augment

import (
	"math"
	"math/rand"

	"github.com/Brae2357/convnet"
)

const (
	maxRotationDegrees = 15
	minScale           = 0.9
	maxScale           = 1.1
	maxShiftPixels     = 3
)

// Augment returns a randomly perturbed copy of a [0,1]-normalized grayscale image: a rotation of
// up to ±15°, a scale between 0.9× and 1.1×, and a translation of up to ±3 pixels, all about the
// image center. The result has the same shape as the input; pixels pulled from outside the
// original image are black.
func Augment(m convnet.Matrix, rng *rand.Rand) convnet.Matrix {
	angle := (rng.Float64()*2 - 1) * maxRotationDegrees * math.Pi / 180
	scale := minScale + rng.Float64()*(maxScale-minScale)
	shiftX := float64(rng.Intn(2*maxShiftPixels+1) - maxShiftPixels)
	shiftY := float64(rng.Intn(2*maxShiftPixels+1) - maxShiftPixels)

	rows, cols := m.Rows(), m.Cols()
	centerX := float64(cols-1) / 2
	centerY := float64(rows-1) / 2

	sin, cos := math.Sincos(angle)

	// Inverse-map each destination pixel back into the source image: undo the translation, then
	// the scale, then the rotation, all relative to the center.
	pixels := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		pixels[y] = make([]float64, cols)
		for x := 0; x < cols; x++ {
			dx := (float64(x) - centerX - shiftX) / scale
			dy := (float64(y) - centerY - shiftY) / scale

			srcX := centerX + dx*cos + dy*sin
			srcY := centerY - dx*sin + dy*cos

			pixels[y][x] = sample(m, srcX, srcY)
		}
	}

	return convnet.FromData(pixels)
}

// sample reads the image at fractional coordinates with bilinear interpolation, treating
// everything outside the image as 0. The result is clamped to [0,1].
func sample(m convnet.Matrix, x, y float64) float64 {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-float64(x0), y-float64(y0)

	v := at(m, y0, x0)*(1-fx)*(1-fy) +
		at(m, y0, x0+1)*fx*(1-fy) +
		at(m, y0+1, x0)*(1-fx)*fy +
		at(m, y0+1, x0+1)*fx*fy

	return math.Max(0, math.Min(v, 1))
}

func at(m convnet.Matrix, row, col int) float64 {
	if row < 0 || row >= m.Rows() || col < 0 || col >= m.Cols() {
		return 0
	}

	return m.At(row, col)
}
