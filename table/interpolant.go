package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInterpolant reports an interpolation kind that the target
	// table type does not recognize.
	ErrInvalidInterpolant = errors.New("invalid interpolation method")
	// ErrTooFewPoints reports a table below the minimum size for the
	// chosen interpolation kind.
	ErrTooFewPoints = errors.New("too few points")
	// ErrGradientUnsupported reports a gradient request on a 2D kind that
	// has no analytic gradient.
	ErrGradientUnsupported = errors.New("gradient not implemented")
	// ErrSizeMismatch reports paired input slices of unequal length.
	ErrSizeMismatch = errors.New("mismatched lengths")
	// ErrNotIncreasing reports an entry added to a TableBuilder out of
	// increasing x order.
	ErrNotIncreasing = errors.New("entries must be strictly increasing in x")
	// ErrFinalized reports use of a TableBuilder after Finalize.
	ErrFinalized = errors.New("builder already finalized")
)

// Interpolant selects the interpolation policy of a Table or Table2D.
type Interpolant uint8

const (
	Floor Interpolant = iota
	Ceil
	Nearest
	Linear
	Spline
)

var InterpolantNames = map[string]Interpolant{
	"floor":   Floor,
	"ceil":    Ceil,
	"nearest": Nearest,
	"linear":  Linear,
	"spline":  Spline,
}

// NewInterpolant parses a kind label as found in input files and flags.
func NewInterpolant(label string) (it Interpolant, err error) {
	var (
		ok bool
	)
	if it, ok = InterpolantNames[strings.ToLower(label)]; !ok {
		err = fmt.Errorf("%w: %q", ErrInvalidInterpolant, label)
	}
	return
}

func (it Interpolant) String() string {
	switch it {
	case Floor:
		return "floor"
	case Ceil:
		return "ceil"
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case Spline:
		return "spline"
	}
	return fmt.Sprintf("Interpolant(%d)", uint8(it))
}
