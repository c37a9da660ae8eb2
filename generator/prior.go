package generator

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/pkg/errors"
)

// parsePrior broadcasts a prior specification to a width-length vector.
// Accepted forms: empty (default fill), a single value (broadcast), or
// exactly width values.
func parsePrior(name string, v []float64, width int, fill float64) (*mat.VecDense, error) {
	out := mat.NewVecDense(width, nil)
	switch len(v) {
	case 0:
		for i := 0; i < width; i++ {
			out.SetVec(i, fill)
		}
	case 1:
		for i := 0; i < width; i++ {
			out.SetVec(i, v[0])
		}
	case width:
		for i := 0; i < width; i++ {
			out.SetVec(i, v[i])
		}
	default:
		return nil, errors.Wrapf(errors.ErrCannotParsePrior,
			"%s: expected 1 or %d values, got %d", name, width, len(v))
	}
	return out, nil
}

// parsePriorSigma broadcasts a prior standard-deviation specification and
// validates that no entry is negative or NaN. +Inf is allowed and means an
// uninformative prior for that coefficient; the default is +Inf everywhere.
// An exact zero is accepted at construction but makes the precision term
// 1/sigma² infinite at fit time, which is surfaced there as a degenerate-fit
// warning rather than silently corrected.
func parsePriorSigma(name string, v []float64, width int) (*mat.VecDense, error) {
	out, err := parsePrior(name, v, width, math.Inf(1))
	if err != nil {
		return nil, err
	}
	for i := 0; i < width; i++ {
		s := out.AtVec(i)
		if math.IsNaN(s) || s < 0 {
			return nil, errors.NewValidationError(name, "entries must not be negative or NaN", s)
		}
	}
	return out, nil
}
