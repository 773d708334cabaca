package colorspace

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Array is a dense row-major array of any shape whose last axis holds color
// channels and so must have length 3.
type Array struct {
	Shape []int
	Data  []float64
}

// NewArray validates shape against data and returns Array sharing data.
func NewArray(shape []int, data []float64) (Array, error) {
	if len(shape) == 0 || shape[len(shape)-1] != 3 {
		return Array{}, fmt.Errorf("last axis must have length 3, shape %v", shape)
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return Array{}, fmt.Errorf("negative dimension in shape %v", shape)
		}
		size *= d
	}
	if size != len(data) {
		return Array{}, fmt.Errorf("shape %v requires %d values, got %d", shape, size, len(data))
	}
	return Array{Shape: append([]int(nil), shape...), Data: data}, nil
}

// Rows returns number of color triples in the array.
func (a Array) Rows() int {
	return len(a.Data) / 3
}

// Row returns i-th color triple.
func (a Array) Row(i int) Triple {
	return Triple{a.Data[i*3], a.Data[i*3+1], a.Data[i*3+2]}
}

func (a Array) setRow(i int, t Triple) {
	copy(a.Data[i*3:i*3+3], t[:])
}

// like returns zeroed array of the same shape.
func (a Array) like() Array {
	return Array{Shape: append([]int(nil), a.Shape...), Data: make([]float64, len(a.Data))}
}

// Triples flattens leading axes.
func (a Array) Triples() []Triple {
	out := make([]Triple, a.Rows())
	for i := range out {
		out[i] = a.Row(i)
	}
	return out
}

// ToRGBArray applies ToRGB to every row of HSL array, output has the same
// shape.
func ToRGBArray(hsl Array) Array {
	out := hsl.like()
	for i := range hsl.Rows() {
		out.setRow(i, ToRGB(hsl.Row(i)))
	}
	return out
}

// ToRGBBatch applies ToRGB to every triple.
func ToRGBBatch(hsl []Triple) []Triple {
	out := make([]Triple, len(hsl))
	for i, t := range hsl {
		out[i] = ToRGB(t)
	}
	return out
}

// ToRGBDense converts n x 3 matrix of HSL rows.
func ToRGBDense(hsl mat.Matrix) (*mat.Dense, error) {
	r, c := hsl.Dims()
	if c != 3 {
		return nil, fmt.Errorf("expected 3 columns, got %d", c)
	}
	if r == 0 {
		return nil, mat.ErrZeroLength
	}
	out := mat.NewDense(r, 3, nil)
	for i := range r {
		rgb := ToRGB(Triple{hsl.At(i, 0), hsl.At(i, 1), hsl.At(i, 2)})
		out.SetRow(i, rgb[:])
	}
	return out, nil
}
