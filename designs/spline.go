package designs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/core/parallel"
	"github.com/goml-tools/lingen/pkg/errors"
)

// splineDegree is the polynomial degree of the B-spline basis (cubic).
const splineDegree = 3

// BSpline is a cubic B-spline basis on a clamped uniform knot vector over
// [lo, hi], with one column per basis function. Points outside the domain
// contribute zero to every column.
type BSpline struct {
	arg    string
	nbasis int
	lo, hi float64
	knots  []float64
}

// NewBSpline creates a cubic B-spline design with nbasis basis functions
// over the closed interval [lo, hi]. nbasis must be at least degree+1 = 4.
func NewBSpline(arg string, nbasis int, lo, hi float64) (*BSpline, error) {
	if arg == "" {
		return nil, errors.NewValidationError("arg", "must be a non-empty string", arg)
	}
	if nbasis < splineDegree+1 {
		return nil, errors.NewValidationError("nbasis", "must be at least 4 for a cubic basis", nbasis)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi <= lo {
		return nil, errors.NewValidationError("domain", "requires finite lo < hi", fmt.Sprintf("[%g, %g]", lo, hi))
	}

	// Clamped uniform knot vector: degree+1 copies of each boundary,
	// uniform interior knots.
	nknots := nbasis + splineDegree + 1
	ninterior := nknots - 2*(splineDegree+1)
	knots := make([]float64, nknots)
	for i := 0; i <= splineDegree; i++ {
		knots[i] = lo
		knots[nknots-1-i] = hi
	}
	step := (hi - lo) / float64(ninterior+1)
	for i := 0; i < ninterior; i++ {
		knots[splineDegree+1+i] = lo + float64(i+1)*step
	}

	return &BSpline{arg: arg, nbasis: nbasis, lo: lo, hi: hi, knots: knots}, nil
}

// ArgNames returns the single variable name.
func (b *BSpline) ArgNames() []string { return []string{b.arg} }

// Width returns the number of basis functions.
func (b *BSpline) Width() int { return b.nbasis }

// NVectors returns 1.
func (b *BSpline) NVectors() int { return 1 }

// Knots returns a copy of the knot vector.
func (b *BSpline) Knots() []float64 {
	return append([]float64(nil), b.knots...)
}

// Terms returns the symbolic term per column.
func (b *BSpline) Terms() []string {
	terms := make([]string, b.nbasis)
	for j := range terms {
		terms[j] = fmt.Sprintf("B_{%d}(\\mathbf{%s})", j, b.arg)
	}
	return terms
}

// DesignMatrix returns the basis-function matrix for the input vector.
func (b *BSpline) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	x, err := singleVector("BSpline.DesignMatrix", vectors)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	X := mat.NewDense(n, b.nbasis, nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			v := x.AtVec(i)
			if v < b.lo || v > b.hi {
				continue
			}
			for j := 0; j < b.nbasis; j++ {
				X.Set(i, j, b.basis(j, splineDegree, v))
			}
		}
	})
	return X, nil
}

// basis evaluates the Cox-de Boor recursion for basis function j of the
// given degree at v. The last span is treated as closed so that v == hi
// is supported.
func (b *BSpline) basis(j, degree int, v float64) float64 {
	if degree == 0 {
		if b.knots[j] <= v && v < b.knots[j+1] {
			return 1
		}
		// Closed right end of the domain.
		if v == b.hi && b.knots[j] < b.knots[j+1] && b.knots[j+1] == b.hi {
			return 1
		}
		return 0
	}

	var left, right float64
	if denom := b.knots[j+degree] - b.knots[j]; denom > 0 {
		left = (v - b.knots[j]) / denom * b.basis(j, degree-1, v)
	}
	if denom := b.knots[j+degree+1] - b.knots[j+1]; denom > 0 {
		right = (b.knots[j+degree+1] - v) / denom * b.basis(j+1, degree-1, v)
	}
	return left + right
}
