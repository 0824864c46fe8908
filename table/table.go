// Package table implements table-driven interpolation of sampled
// functions in one and two dimensions. A Table is built once from knot
// and value arrays and then answers many lookup queries, with repeated
// spatially-coherent queries costing about as much as a single binary
// search thanks to the bracket cursor inside ArgVec.
//
// Tables borrow the knot and value slices they are built from. The caller
// must keep those slices alive and unmodified for the table's lifetime;
// only the spline coefficients (and a TableBuilder's accumulation
// buffers) are owned by the package.
package table

import (
	"fmt"
	"sync"

	"github.com/notargets/interp/utils"
)

// Table interpolates a function sampled at N strictly increasing knots.
type Table struct {
	iType  Interpolant
	args   *ArgVec
	vals   []float64
	y2     []float64 // spline second derivatives, Spline kind only
	interp func(a float64, i int) float64
}

// NewTable builds a Table over borrowed knot and value slices of equal
// length. Knots must be strictly increasing; neither that nor the length
// match is validated (undefined results on violation). Spline requires at
// least 3 knots, every other kind at least 2.
func NewTable(args, vals []float64, iType Interpolant) (t *Table, err error) {
	var (
		av *ArgVec
	)
	if iType == Spline && len(args) < 3 {
		err = fmt.Errorf("%w: spline needs at least 3 knots, have %d",
			ErrTooFewPoints, len(args))
		return
	}
	if av, err = NewArgVec(args); err != nil {
		return
	}
	t = &Table{
		iType: iType,
		args:  av,
		vals:  vals,
	}
	switch iType {
	case Linear:
		t.interp = t.linearInterpolate
	case Floor:
		t.interp = t.floorInterpolate
	case Ceil:
		t.interp = t.ceilInterpolate
	case Nearest:
		t.interp = t.nearestInterpolate
	case Spline:
		t.interp = t.splineInterpolate
		t.setupSpline()
	default:
		t = nil
		err = fmt.Errorf("%w: %v", ErrInvalidInterpolant, iType)
	}
	return
}

// NewTableVec is NewTable for callers holding gonum-backed vectors. The
// underlying data slices are borrowed, matching NewTable's contract.
func NewTableVec(args, vals utils.Vector, iType Interpolant) (*Table, error) {
	return NewTable(args.RawData(), vals.RawData(), iType)
}

func (t *Table) ArgMin() float64          { return t.args.Front() }
func (t *Table) ArgMax() float64          { return t.args.Back() }
func (t *Table) Size() int                { return t.args.Len() }
func (t *Table) Interpolant() Interpolant { return t.iType }

// Lookup interpolates the function value at a. Queries outside
// [ArgMin, ArgMax] extrapolate using the boundary bracket's formula; this
// is never an error.
func (t *Table) Lookup(a float64) float64 {
	i := t.args.UpperIndex(a)
	return t.interp(a, i)
}

// Evaluate is the bounded form of Lookup: it returns 0 for queries
// outside the table domain instead of extrapolating.
func (t *Table) Evaluate(a float64) float64 {
	if !t.args.InDomain(a) {
		return 0.
	}
	return t.Lookup(a)
}

// InterpMany applies Lookup elementwise.
func (t *Table) InterpMany(args []float64) (vals []float64) {
	vals = make([]float64, len(args))
	for k, a := range args {
		vals[k] = t.Lookup(a)
	}
	return
}

// EvaluateMany applies Evaluate elementwise.
func (t *Table) EvaluateMany(args []float64) (vals []float64) {
	vals = make([]float64, len(args))
	for k, a := range args {
		vals[k] = t.Evaluate(a)
	}
	return
}

// InterpManyParallel splits the queries over np goroutines, each with its
// own search cursor so the workers never contend on the shared hint.
// np below 1 is clamped to 1.
func (t *Table) InterpManyParallel(args []float64, np int) (vals []float64) {
	return t.manyParallel(args, np, false)
}

// EvaluateManyParallel is the bounded form of InterpManyParallel.
func (t *Table) EvaluateManyParallel(args []float64, np int) (vals []float64) {
	return t.manyParallel(args, np, true)
}

func (t *Table) manyParallel(args []float64, np int, bounded bool) (vals []float64) {
	if np < 1 {
		np = 1
	}
	var (
		wg sync.WaitGroup
		pm = utils.NewPartitionMap(np, len(args))
	)
	vals = make([]float64, len(args))
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cur := NewCursor()
			kMin, kMax := pm.GetBucketRange(n)
			for k := kMin; k < kMax; k++ {
				a := args[k]
				if bounded && !t.args.InDomain(a) {
					continue // vals[k] stays 0
				}
				i := t.args.UpperIndexCursor(a, &cur)
				vals[k] = t.interp(a, i)
			}
		}(n)
	}
	wg.Wait()
	return
}

func (t *Table) linearInterpolate(a float64, i int) float64 {
	ax := (t.args.vec[i] - a) / (t.args.vec[i] - t.args.vec[i-1])
	bx := 1.0 - ax
	return t.vals[i]*bx + t.vals[i-1]*ax
}

func (t *Table) floorInterpolate(a float64, i int) float64 {
	// On entry it is only guaranteed that vec[i-1] <= a <= vec[i].
	// Normally those ='s are ok, but floor and ceil take the extra check
	// to see if a sits exactly on the opposite bound.
	if a == t.args.vec[i] {
		i++
	}
	return t.vals[i-1]
}

func (t *Table) ceilInterpolate(a float64, i int) float64 {
	if a == t.args.vec[i-1] {
		i--
	}
	return t.vals[i]
}

func (t *Table) nearestInterpolate(a float64, i int) float64 {
	if (a - t.args.vec[i-1]) < (t.args.vec[i] - a) {
		i--
	}
	return t.vals[i]
}

func (t *Table) splineInterpolate(a float64, i int) float64 {
	// Factored form of the natural cubic spline: with bb = h-aa the h
	// factors combine so only one division by h is needed
	h := t.args.vec[i] - t.args.vec[i-1]
	aa := t.args.vec[i] - a
	bb := h - aa
	return (aa*t.vals[i-1] + bb*t.vals[i] -
		(1./6.)*aa*bb*((aa+h)*t.y2[i-1]+(bb+h)*t.y2[i])) / h
}

// setupSpline computes the second derivatives of the natural cubic
// spline. Row k of the system has diagonal 2*(x[k+1]-x[k-1]),
// off-diagonal x[k+1]-x[k] and right hand side six times the divided
// second difference; the natural boundary condition fixes y2 to zero at
// both ends.
func (t *Table) setupSpline() {
	var (
		n = len(t.vals)
		x = t.args.vec
		v = t.vals
	)
	t.y2 = make([]float64, n)
	t.y2[0] = 0.
	t.y2[n-1] = 0.
	if n == 3 {
		// Single interior point has a closed form
		t.y2[1] = 3. * ((v[2]-v[1])/(x[2]-x[1]) - (v[1]-v[0])/(x[1]-x[0])) /
			(x[2] - x[0])
		return
	}
	var (
		m    = n - 2
		diag = make([]float64, m)
		off  = make([]float64, m-1)
		rhs  = make([]float64, m)
	)
	for k := 1; k <= m; k++ {
		diag[k-1] = 2. * (x[k+1] - x[k-1])
		rhs[k-1] = 6. * ((v[k+1]-v[k])/(x[k+1]-x[k]) -
			(v[k]-v[k-1])/(x[k]-x[k-1]))
		if k < m {
			off[k-1] = x[k+1] - x[k]
		}
	}
	solveSymTriDiag(off, diag, rhs, t.y2[1:n-1])
}

// solveSymTriDiag solves a symmetric tridiagonal system by the Thomas
// algorithm, writing the solution into out. off holds the single
// off-diagonal band. No pivoting: the spline matrix is diagonally
// dominant for strictly increasing knots, so elimination is stable.
func solveSymTriDiag(off, diag, rhs, out []float64) {
	var (
		m   = len(diag)
		c   = make([]float64, m-1)
		bet = diag[0]
	)
	out[0] = rhs[0] / bet
	for i := 1; i < m; i++ {
		c[i-1] = off[i-1] / bet
		bet = diag[i] - off[i-1]*c[i-1]
		out[i] = (rhs[i] - off[i-1]*out[i-1]) / bet
	}
	for i := m - 2; i >= 0; i-- {
		out[i] -= c[i] * out[i+1]
	}
}
