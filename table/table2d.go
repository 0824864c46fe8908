package table

import (
	"fmt"
	"sync"

	"github.com/notargets/interp/utils"
)

// Table2D interpolates a function sampled on a rectangular grid of
// Nx by Ny knots. The value grid is borrowed and addressed row-major as
// vals[i*Ny+j] for knot (x[i], y[j]); the caller guarantees its length
// and lifetime. Each axis policy is the tensor-product extension of the
// matching 1D kind; Spline is not available in 2D.
type Table2D struct {
	iType        Interpolant
	xargs, yargs *ArgVec
	vals         []float64
	ny           int
	interp       func(x, y float64, i, j int) float64
}

func NewTable2D(xargs, yargs, vals []float64, iType Interpolant) (t2 *Table2D, err error) {
	var (
		xav, yav *ArgVec
	)
	if xav, err = NewArgVec(xargs); err != nil {
		return
	}
	if yav, err = NewArgVec(yargs); err != nil {
		return
	}
	t2 = &Table2D{
		iType: iType,
		xargs: xav,
		yargs: yav,
		vals:  vals,
		ny:    len(yargs),
	}
	switch iType {
	case Linear:
		t2.interp = t2.linearInterpolate
	case Floor:
		t2.interp = t2.floorInterpolate
	case Ceil:
		t2.interp = t2.ceilInterpolate
	case Nearest:
		t2.interp = t2.nearestInterpolate
	default:
		t2 = nil
		err = fmt.Errorf("%w for 2D table: %v", ErrInvalidInterpolant, iType)
	}
	return
}

// NewTable2DVec is NewTable2D for callers holding gonum-backed vectors;
// the underlying data slices are borrowed.
func NewTable2DVec(xargs, yargs, vals utils.Vector, iType Interpolant) (*Table2D, error) {
	return NewTable2D(xargs.RawData(), yargs.RawData(), vals.RawData(), iType)
}

func (t2 *Table2D) XMin() float64 { return t2.xargs.Front() }
func (t2 *Table2D) XMax() float64 { return t2.xargs.Back() }
func (t2 *Table2D) YMin() float64 { return t2.yargs.Front() }
func (t2 *Table2D) YMax() float64 { return t2.yargs.Back() }
func (t2 *Table2D) NX() int       { return t2.xargs.Len() }
func (t2 *Table2D) NY() int       { return t2.ny }

func (t2 *Table2D) Interpolant() Interpolant { return t2.iType }

// Lookup interpolates the function value at (x, y), extrapolating from
// the boundary brackets outside the grid domain.
func (t2 *Table2D) Lookup(x, y float64) float64 {
	i := t2.xargs.UpperIndex(x)
	j := t2.yargs.UpperIndex(y)
	return t2.interp(x, y, i, j)
}

// Evaluate is the bounded form of Lookup: 0 outside the grid domain.
func (t2 *Table2D) Evaluate(x, y float64) float64 {
	if !t2.xargs.InDomain(x) || !t2.yargs.InDomain(y) {
		return 0.
	}
	return t2.Lookup(x, y)
}

// InterpMany applies Lookup to each (xs[k], ys[k]) pair.
func (t2 *Table2D) InterpMany(xs, ys []float64) (vals []float64, err error) {
	if len(xs) != len(ys) {
		err = fmt.Errorf("%w: %d x coordinates, %d y coordinates",
			ErrSizeMismatch, len(xs), len(ys))
		return
	}
	vals = make([]float64, len(xs))
	for k := range xs {
		vals[k] = t2.Lookup(xs[k], ys[k])
	}
	return
}

// InterpManyParallel splits the query pairs over np goroutines, each with
// private search cursors on both axes. np below 1 is clamped to 1.
func (t2 *Table2D) InterpManyParallel(xs, ys []float64, np int) (vals []float64, err error) {
	if len(xs) != len(ys) {
		err = fmt.Errorf("%w: %d x coordinates, %d y coordinates",
			ErrSizeMismatch, len(xs), len(ys))
		return
	}
	if np < 1 {
		np = 1
	}
	var (
		wg sync.WaitGroup
		pm = utils.NewPartitionMap(np, len(xs))
	)
	vals = make([]float64, len(xs))
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			xcur, ycur := NewCursor(), NewCursor()
			kMin, kMax := pm.GetBucketRange(n)
			for k := kMin; k < kMax; k++ {
				i := t2.xargs.UpperIndexCursor(xs[k], &xcur)
				j := t2.yargs.UpperIndexCursor(ys[k], &ycur)
				vals[k] = t2.interp(xs[k], ys[k], i, j)
			}
		}(n)
	}
	wg.Wait()
	return
}

// Gradient returns the analytic partial derivatives of the bilinear
// surface at (x, y). Only the Linear kind has a defined gradient; every
// other kind fails with ErrGradientUnsupported.
func (t2 *Table2D) Gradient(x, y float64) (dfdx, dfdy float64, err error) {
	if t2.iType != Linear {
		err = fmt.Errorf("%w for %v interp", ErrGradientUnsupported, t2.iType)
		return
	}
	i := t2.xargs.UpperIndex(x)
	j := t2.yargs.UpperIndex(y)
	dfdx, dfdy = t2.linearGradient(x, y, i, j)
	return
}

// GradientMany applies Gradient to each (xs[k], ys[k]) pair.
func (t2 *Table2D) GradientMany(xs, ys []float64) (dfdx, dfdy []float64, err error) {
	if t2.iType != Linear {
		err = fmt.Errorf("%w for %v interp", ErrGradientUnsupported, t2.iType)
		return
	}
	if len(xs) != len(ys) {
		err = fmt.Errorf("%w: %d x coordinates, %d y coordinates",
			ErrSizeMismatch, len(xs), len(ys))
		return
	}
	dfdx = make([]float64, len(xs))
	dfdy = make([]float64, len(xs))
	for k := range xs {
		i := t2.xargs.UpperIndex(xs[k])
		j := t2.yargs.UpperIndex(ys[k])
		dfdx[k], dfdy[k] = t2.linearGradient(xs[k], ys[k], i, j)
	}
	return
}

func (t2 *Table2D) linearInterpolate(x, y float64, i, j int) float64 {
	var (
		X, Y = t2.xargs.vec, t2.yargs.vec
		ny   = t2.ny
	)
	ax := (X[i] - x) / (X[i] - X[i-1])
	ay := (Y[j] - y) / (Y[j] - Y[j-1])
	bx := 1.0 - ax
	by := 1.0 - ay
	return t2.vals[(i-1)*ny+j-1]*ax*ay +
		t2.vals[i*ny+j-1]*bx*ay +
		t2.vals[(i-1)*ny+j]*ax*by +
		t2.vals[i*ny+j]*bx*by
}

// linearGradient differentiates the bilinear form directly, no finite
// differencing.
func (t2 *Table2D) linearGradient(x, y float64, i, j int) (dfdx, dfdy float64) {
	var (
		X, Y = t2.xargs.vec, t2.yargs.vec
		ny   = t2.ny
	)
	dx := X[i] - X[i-1]
	dy := Y[j] - Y[j-1]
	f00 := t2.vals[(i-1)*ny+j-1]
	f01 := t2.vals[(i-1)*ny+j]
	f10 := t2.vals[i*ny+j-1]
	f11 := t2.vals[i*ny+j]
	ax := (X[i] - x) / dx
	bx := 1.0 - ax
	ay := (Y[j] - y) / dy
	by := 1.0 - ay
	dfdx = ((f10-f00)*ay + (f11-f01)*by) / dx
	dfdy = ((f01-f00)*ax + (f11-f10)*bx) / dy
	return
}

func (t2 *Table2D) floorInterpolate(x, y float64, i, j int) float64 {
	// As in the 1D floor case, a query exactly on the upper knot of its
	// bracket takes the value at that knot, independently per axis
	if x == t2.xargs.vec[i] {
		i++
	}
	if y == t2.yargs.vec[j] {
		j++
	}
	return t2.vals[(i-1)*t2.ny+j-1]
}

func (t2 *Table2D) ceilInterpolate(x, y float64, i, j int) float64 {
	if x == t2.xargs.vec[i-1] {
		i--
	}
	if y == t2.yargs.vec[j-1] {
		j--
	}
	return t2.vals[i*t2.ny+j]
}

func (t2 *Table2D) nearestInterpolate(x, y float64, i, j int) float64 {
	if (x - t2.xargs.vec[i-1]) < (t2.xargs.vec[i] - x) {
		i--
	}
	if (y - t2.yargs.vec[j-1]) < (t2.yargs.vec[j] - y) {
		j--
	}
	return t2.vals[i*t2.ny+j]
}
