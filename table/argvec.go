package table

import (
	"fmt"
	"math"
	"sort"
)

// ArgVec wraps a strictly increasing sequence of knot coordinates and
// answers bracket queries on it. The knot slice is borrowed, not copied:
// the caller must keep it alive and unmodified for the lifetime of the
// ArgVec and of any Table built on it.
//
// Strict monotonicity is a caller contract and is not validated here -
// a non-increasing sequence produces undefined bracket results.
type ArgVec struct {
	vec                  []float64
	equalSpaced          bool
	da                   float64
	lowerSlop, upperSlop float64
	cursor               Cursor
}

// Cursor holds the last resolved bracket index for one stream of queries.
// The hinted search mutates it on every query against non-equally-spaced
// knots, so a shared ArgVec (via its default cursor) is not safe for
// concurrent queries. Callers that need independent query streams make one
// Cursor each and use UpperIndexCursor.
type Cursor struct {
	lastIndex int
}

func NewCursor() Cursor {
	return Cursor{lastIndex: 1}
}

func NewArgVec(vec []float64) (av *ArgVec, err error) {
	var (
		n = len(vec)
	)
	if n < 2 {
		err = fmt.Errorf("%w: need at least 2 knots, have %d", ErrTooFewPoints, n)
		return
	}
	av = &ArgVec{
		vec:    vec,
		cursor: NewCursor(),
	}
	// Detect (approximately) equal spacing, which enables the O(1)
	// direct-index path in UpperIndex
	const tolerance = 0.01
	av.da = (av.Back() - av.Front()) / float64(n-1)
	av.equalSpaced = true
	for i := 1; i < n; i++ {
		if math.Abs((vec[i]-vec[0])/av.da-float64(i)) > tolerance {
			av.equalSpaced = false
			break
		}
	}
	// Slop margins absorb floating point roundoff at the exact endpoints
	av.lowerSlop = (vec[1] - vec[0]) * 1.e-6
	av.upperSlop = (vec[n-1] - vec[n-2]) * 1.e-6
	return
}

func (av *ArgVec) Front() float64 { return av.vec[0] }
func (av *ArgVec) Back() float64  { return av.vec[len(av.vec)-1] }
func (av *ArgVec) Len() int       { return len(av.vec) }

func (av *ArgVec) At(i int) float64 { return av.vec[i] }

// InDomain reports whether a lies within [Front, Back], allowing the slop
// margin at each end so that roundoff at an exact endpoint does not push a
// query outside the domain.
func (av *ArgVec) InDomain(a float64) bool {
	return a >= av.Front()-av.lowerSlop && a <= av.Back()+av.upperSlop
}

// UpperIndex returns i such that vec[i-1] <= a <= vec[i], with
// 1 <= i <= Len()-1. A query below the first knot returns 1 and a query
// above the last knot returns Len()-1, so the caller always receives a
// usable boundary bracket for extrapolation; domain checks are the
// caller's business. Uses the ArgVec's own cursor, see Cursor for the
// concurrency implications.
func (av *ArgVec) UpperIndex(a float64) (i int) {
	return av.UpperIndexCursor(a, &av.cursor)
}

// UpperIndexCursor is UpperIndex with a caller-supplied search cursor, for
// callers running more than one query stream against the same knots.
func (av *ArgVec) UpperIndexCursor(a float64, c *Cursor) (i int) {
	var (
		n = len(av.vec)
	)
	if a < av.Front() {
		return 1
	}
	if a > av.Back() {
		return n - 1
	}

	if av.equalSpaced {
		i = int(math.Ceil((a - av.Front()) / av.da))
		if i >= n { // in case of rounding error
			i--
		}
		if i == 0 {
			i++
		}
		// correct by at most one step for rounding errors
		for a > av.vec[i] {
			i++
		}
		for a < av.vec[i-1] {
			i--
		}
		return
	}

	last := c.lastIndex
	if last < 1 || last > n-1 {
		// A zero value Cursor starts at the first bracket
		last = 1
		c.lastIndex = 1
	}
	switch {
	case a < av.vec[last-1]:
		// Check the bracket one step down before searching
		if a >= av.vec[last-2] {
			c.lastIndex = last - 1
		} else {
			// Search the entries from 1..last-1
			c.lastIndex = sort.Search(last-1, func(k int) bool {
				return av.vec[k] > a
			})
		}
	case a > av.vec[last]:
		// Check the bracket one step up before searching
		if a <= av.vec[last+1] {
			c.lastIndex = last + 1
		} else {
			// Search the entries from last+1..n-1
			c.lastIndex = last + 1 + sort.Search(n-last-1, func(k int) bool {
				return av.vec[last+1+k] >= a
			})
		}
	default:
		// The cursor already holds the right bracket
	}
	return c.lastIndex
}
