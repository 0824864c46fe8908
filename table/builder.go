package table

import "fmt"

// TableBuilder accumulates (x, f) samples one at a time and produces an
// immutable Table on Finalize. Entries must arrive in strictly increasing
// x order so the finished table satisfies the knot ordering contract
// without a sort. A builder finalizes exactly once; the accumulated
// buffers are owned by the resulting Table afterwards.
type TableBuilder struct {
	iType Interpolant
	xvec  []float64
	fvec  []float64
	final bool
}

func NewTableBuilder(iType Interpolant) *TableBuilder {
	return &TableBuilder{iType: iType}
}

// AddEntry appends one sample. Fails if x does not exceed the previous
// entry's x, or if the builder is already finalized.
func (tb *TableBuilder) AddEntry(x, f float64) (err error) {
	if tb.final {
		err = ErrFinalized
		return
	}
	if n := len(tb.xvec); n > 0 && x <= tb.xvec[n-1] {
		err = fmt.Errorf("%w: x = %g after x = %g", ErrNotIncreasing,
			x, tb.xvec[n-1])
		return
	}
	tb.xvec = append(tb.xvec, x)
	tb.fvec = append(tb.fvec, f)
	return
}

// Size returns the number of entries accumulated so far.
func (tb *TableBuilder) Size() int { return len(tb.xvec) }

// Finalize freezes the accumulated samples into a Table with the
// builder's interpolation kind. The builder cannot be reused: a second
// Finalize, or any later AddEntry, fails.
func (tb *TableBuilder) Finalize() (t *Table, err error) {
	if tb.final {
		err = ErrFinalized
		return
	}
	if t, err = NewTable(tb.xvec, tb.fvec, tb.iType); err != nil {
		return
	}
	tb.final = true
	return
}
