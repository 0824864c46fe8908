package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a gonum VecDense for use as knot, value and query storage.
type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) Vector {
	var (
		data []float64
	)
	if len(dataO) != 0 {
		data = dataO[0]
	}
	return Vector{mat.NewVecDense(n, data)}
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)    { return v.V.Dims() }
func (v Vector) At(i, j int) float64 { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix       { return v.V.T() }
func (v Vector) AtVec(i int) float64 { return v.V.AtVec(i) }
func (v Vector) Len() int            { return v.V.Len() }

// RawData exposes the backing slice without copying. Anything built on
// the returned slice aliases this vector's storage.
func (v Vector) RawData() []float64 {
	return v.V.RawVector().Data
}

// Chainable (extended) methods
func (v Vector) Set(val float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] = val
	}
	return v
}

// Linspace fills the vector with evenly spaced values from xmin to xmax
// inclusive.
func (v Vector) Linspace(xmin, xmax float64) Vector {
	var (
		data = v.V.RawVector().Data
		N    = len(data)
	)
	if N == 1 {
		data[0] = xmin
		return v
	}
	dx := (xmax - xmin) / float64(N-1)
	for i := range data {
		data[i] = xmin + float64(i)*dx
	}
	data[N-1] = xmax
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Min() (min float64) {
	var (
		data = v.V.RawVector().Data
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.V.RawVector().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
