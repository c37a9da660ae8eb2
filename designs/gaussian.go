package designs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/core/parallel"
	"github.com/goml-tools/lingen/pkg/errors"
)

// GaussianBumps is a radial basis of fixed-width gaussians, one column per
// center: exp(-(x-c)² / (2σ²)).
type GaussianBumps struct {
	arg     string
	centers []float64
	sigma   float64
}

// NewGaussianBumps creates a gaussian-bump design with the given centers
// and a common width sigma.
func NewGaussianBumps(arg string, centers []float64, sigma float64) (*GaussianBumps, error) {
	if arg == "" {
		return nil, errors.NewValidationError("arg", "must be a non-empty string", arg)
	}
	if len(centers) == 0 {
		return nil, errors.NewValidationError("centers", "must not be empty", centers)
	}
	if math.IsNaN(sigma) || sigma <= 0 {
		return nil, errors.NewValidationError("sigma", "must be strictly positive", sigma)
	}
	return &GaussianBumps{
		arg:     arg,
		centers: append([]float64(nil), centers...),
		sigma:   sigma,
	}, nil
}

// ArgNames returns the single variable name.
func (g *GaussianBumps) ArgNames() []string { return []string{g.arg} }

// Width returns the number of centers.
func (g *GaussianBumps) Width() int { return len(g.centers) }

// NVectors returns 1.
func (g *GaussianBumps) NVectors() int { return 1 }

// Centers returns a copy of the bump centers.
func (g *GaussianBumps) Centers() []float64 {
	return append([]float64(nil), g.centers...)
}

// Terms returns the symbolic term per column.
func (g *GaussianBumps) Terms() []string {
	terms := make([]string, len(g.centers))
	for j, c := range g.centers {
		terms[j] = fmt.Sprintf("e^{-\\frac{(\\mathbf{%s} - %g)^2}{2 \\cdot %g^2}}", g.arg, c, g.sigma)
	}
	return terms
}

// DesignMatrix returns the bump matrix for the input vector.
func (g *GaussianBumps) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	x, err := singleVector("GaussianBumps.DesignMatrix", vectors)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	twoSigma2 := 2 * g.sigma * g.sigma
	X := mat.NewDense(n, len(g.centers), nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			v := x.AtVec(i)
			for j, c := range g.centers {
				d := v - c
				X.Set(i, j, math.Exp(-d*d/twoSigma2))
			}
		}
	})
	return X, nil
}
