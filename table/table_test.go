package table

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLinear(t *testing.T) {
	knots := []float64{0, 1, 2, 3}
	vals := []float64{0, 1, 4, 9}
	tab, err := NewTable(knots, vals, Linear)
	require.NoError(t, err)

	assert.Equal(t, 0., tab.ArgMin())
	assert.Equal(t, 3., tab.ArgMax())
	assert.Equal(t, 4, tab.Size())
	assert.Equal(t, Linear, tab.Interpolant())

	assert.Equal(t, 2.5, tab.Lookup(1.5))

	// Exact at every knot
	for k := range knots {
		assert.Equal(t, vals[k], tab.Lookup(knots[k]))
	}

	// Extrapolation continues the boundary segment, bounded evaluation
	// returns 0 outside the domain
	assert.Equal(t, 14., tab.Lookup(4))
	assert.Equal(t, -1., tab.Lookup(-1))
	assert.Equal(t, 0., tab.Evaluate(4))
	assert.Equal(t, 0., tab.Evaluate(-1))
	assert.Equal(t, 2.5, tab.Evaluate(1.5))
}

func TestTableLinearReproduction(t *testing.T) {
	// Linear interpolation of an affine function reproduces it exactly
	// everywhere in the domain, not only at the knots
	knots := []float64{0, 0.1, 0.5, 1.1, 3, 7, 8, 10}
	f := func(x float64) float64 { return 2*x + 3 }
	vals := make([]float64, len(knots))
	for k, x := range knots {
		vals[k] = f(x)
	}
	tab, err := NewTable(knots, vals, Linear)
	require.NoError(t, err)
	for a := 0.; a <= 10.; a += 0.0625 {
		assert.True(t, near(tab.Lookup(a), f(a)), "a = %v", a)
	}
}

func TestTableFloorCeilNearest(t *testing.T) {
	knots := []float64{0, 1, 2}
	vals := []float64{10, 20, 30}
	{
		tab, err := NewTable(knots, vals, Floor)
		require.NoError(t, err)
		// A query exactly on a knot takes the value at that knot, not
		// strictly left of it
		assert.Equal(t, 20., tab.Lookup(1.0))
		assert.Equal(t, 10., tab.Lookup(0.999))
		assert.Equal(t, 20., tab.Lookup(1.5))
		assert.Equal(t, 30., tab.Lookup(2.0))
		for k := range knots {
			assert.Equal(t, vals[k], tab.Lookup(knots[k]))
		}
	}
	{
		tab, err := NewTable(knots, vals, Ceil)
		require.NoError(t, err)
		assert.Equal(t, 20., tab.Lookup(1.0))
		assert.Equal(t, 20., tab.Lookup(0.999))
		assert.Equal(t, 30., tab.Lookup(1.001))
		assert.Equal(t, 10., tab.Lookup(0.0))
		for k := range knots {
			assert.Equal(t, vals[k], tab.Lookup(knots[k]))
		}
	}
	{
		tab, err := NewTable(knots, vals, Nearest)
		require.NoError(t, err)
		assert.Equal(t, 10., tab.Lookup(0.4))
		assert.Equal(t, 20., tab.Lookup(0.6))
		// Ties go to the upper knot
		assert.Equal(t, 20., tab.Lookup(0.5))
		for k := range knots {
			assert.Equal(t, vals[k], tab.Lookup(knots[k]))
		}
	}
}

func TestTableSplineThreePoint(t *testing.T) {
	knots := []float64{0, 1, 2}
	vals := []float64{0, 1, 0}
	tab, err := NewTable(knots, vals, Spline)
	require.NoError(t, err)

	// Closed form for the single interior second derivative:
	// 3*((0-1)/1 - (1-0)/1)/2 = -3
	require.Len(t, tab.y2, 3)
	assert.Equal(t, 0., tab.y2[0])
	assert.Equal(t, 0., tab.y2[2])
	assert.True(t, near(tab.y2[1], -3.))

	// Factored evaluation at a = 0.5: h=1, aa=0.5, bb=0.5,
	// (0.5*0 + 0.5*1 - (1/6)*0.25*(1.5*0 + 1.5*(-3)))/1 = 0.6875
	assert.True(t, near(tab.Lookup(0.5), 0.6875))

	for k := range knots {
		assert.True(t, near(tab.Lookup(knots[k]), vals[k]))
	}
}

func TestTableSplineNaturalBoundary(t *testing.T) {
	knots := []float64{0, 0.5, 1.3, 2, 3.1, 4, 5}
	vals := make([]float64, len(knots))
	for k, x := range knots {
		vals[k] = math.Sin(x)
	}
	tab, err := NewTable(knots, vals, Spline)
	require.NoError(t, err)

	// Natural boundary condition: zero second derivative at both ends
	assert.Equal(t, 0., tab.y2[0])
	assert.Equal(t, 0., tab.y2[len(knots)-1])

	// Finite difference confirmation just inside each boundary. The
	// spline is cubic on the boundary interval, so the second difference
	// recovers y2 exactly at the midpoint of the stencil, which tends to
	// 0 approaching the end knot.
	fd2 := func(x, d float64) float64 {
		return (tab.Lookup(x+2*d) - 2*tab.Lookup(x+d) + tab.Lookup(x)) / (d * d)
	}
	scale := 0.
	for _, y2 := range tab.y2 {
		scale = math.Max(scale, math.Abs(y2))
	}
	d := 1.e-5
	assert.InDelta(t, 0., fd2(tab.ArgMin(), d)/scale, 1.e-3)
	assert.InDelta(t, 0., fd2(tab.ArgMax(), -d)/scale, 1.e-3)

	fmt.Printf("y2 = %v\n", tab.y2)
	for k := range knots {
		assert.True(t, near(tab.Lookup(knots[k]), vals[k]))
	}
}

func TestTableSplineSolverConsistency(t *testing.T) {
	// The Thomas solve must satisfy the assembled tridiagonal system
	knots := []float64{0, 0.7, 1.1, 2.5, 3, 4.2, 5, 6.3}
	vals := []float64{1, -2, 0.5, 3, -1, 2, 0, 1.5}
	tab, err := NewTable(knots, vals, Spline)
	require.NoError(t, err)

	x, v, y2 := knots, vals, tab.y2
	for k := 1; k < len(knots)-1; k++ {
		lhs := (x[k]-x[k-1])*y2[k-1] +
			2.*(x[k+1]-x[k-1])*y2[k] +
			(x[k+1]-x[k])*y2[k+1]
		rhs := 6. * ((v[k+1]-v[k])/(x[k+1]-x[k]) - (v[k]-v[k-1])/(x[k]-x[k-1]))
		assert.True(t, near(lhs, rhs), "row %d: lhs %v, rhs %v", k, lhs, rhs)
	}
}

func TestTableInterpMany(t *testing.T) {
	var (
		N     = 1000
		knots = make([]float64, N)
		vals  = make([]float64, N)
	)
	for k := 0; k < N; k++ {
		knots[k] = float64(k) * 0.01
		vals[k] = math.Cos(knots[k])
	}
	tab, err := NewTable(knots, vals, Spline)
	require.NoError(t, err)

	queries := make([]float64, 5000)
	for k := range queries {
		queries[k] = 9.99 * float64(k) / float64(len(queries)-1)
	}
	want := make([]float64, len(queries))
	for k, a := range queries {
		want[k] = tab.Lookup(a)
	}
	assert.Equal(t, want, tab.InterpMany(queries))
	// Worker counts below 1 fall back to a single worker
	for _, np := range []int{-1, 0, 1, 2, 3, 7} {
		assert.Equal(t, want, tab.InterpManyParallel(queries, np), "np = %d", np)
	}

	// Bounded sweeps zero the out of domain entries and otherwise match
	bq := append([]float64{-1, 10.5}, queries...)
	bwant := make([]float64, len(bq))
	for k, a := range bq {
		bwant[k] = tab.Evaluate(a)
	}
	assert.Equal(t, 0., bwant[0])
	assert.Equal(t, 0., bwant[1])
	assert.Equal(t, bwant, tab.EvaluateMany(bq))
	for _, np := range []int{0, 1, 4} {
		assert.Equal(t, bwant, tab.EvaluateManyParallel(bq, np), "np = %d", np)
	}
}

func TestTableErrors(t *testing.T) {
	knots := []float64{0, 1, 2, 3}
	vals := []float64{0, 1, 4, 9}

	_, err := NewTable(knots, vals, Interpolant(99))
	require.ErrorIs(t, err, ErrInvalidInterpolant)

	_, err = NewTable(knots[:2], vals[:2], Spline)
	require.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewTable(knots[:1], vals[:1], Linear)
	require.ErrorIs(t, err, ErrTooFewPoints)
}

func TestNewInterpolant(t *testing.T) {
	for label, want := range InterpolantNames {
		it, err := NewInterpolant(label)
		require.NoError(t, err)
		assert.Equal(t, want, it)
		assert.Equal(t, label, it.String())
	}
	it, err := NewInterpolant("Spline")
	require.NoError(t, err)
	assert.Equal(t, Spline, it)
	_, err = NewInterpolant("bicubic")
	require.ErrorIs(t, err, ErrInvalidInterpolant)
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*(math.Abs(a)+math.Abs(b)) || math.Abs(a-b) < 1.e-10 {
		l = true
	}
	return
}
