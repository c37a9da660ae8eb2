package generator

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/goml-tools/lingen/pkg/errors"
)

// Evaluate builds the design matrix for the given input vectors and
// multiplies it by the current best coefficients (posterior mean if fitted,
// prior mean otherwise).
//
// When a fit has been performed and the new design matrix has exactly as
// many rows as the fitted dataset had elements, the result is reshaped back
// to the fitted data's (rows, cols) and returned as a *mat.Dense. On any
// other grid the flat *mat.VecDense is returned.
func (g *Generator) Evaluate(vectors ...*mat.VecDense) (out mat.Matrix, err error) {
	defer errors.Recover(&err, "Generator.Evaluate")

	const op = "Generator.Evaluate"

	if err := checkVectors(op, g.design, vectors); err != nil {
		return nil, err
	}
	X, err := g.design.DesignMatrix(vectors...)
	if err != nil {
		return nil, errors.Wrap(err, "building design matrix")
	}
	rows, cols := X.Dims()
	if cols != g.design.Width() {
		return nil, errors.NewDimensionError(op, g.design.Width(), cols, 1)
	}

	mu := mat.NewVecDense(g.design.Width(), g.Mu())
	y := mat.NewVecDense(rows, nil)
	y.MulVec(X, mu)

	if g.state.IsFitted() {
		dataRows, dataCols := g.state.DataShape()
		if rows == dataRows*dataCols {
			return reshape(y, dataRows, dataCols), nil
		}
	}
	return y, nil
}

// Sample draws size coefficient vectors from the multivariate normal
// N(mu, cov) and maps each through the design matrix, producing size
// realizations of the model with posterior uncertainty propagated into
// output space. The result has one realization per column.
//
// After a fit, cov is the posterior covariance. Before a fit a proper
// prior is required: if every prior sigma is finite, cov is the diagonal
// prior covariance; otherwise Sample returns a NotFittedError.
func (g *Generator) Sample(size int, vectors ...*mat.VecDense) (out *mat.Dense, err error) {
	defer errors.Recover(&err, "Generator.Sample")

	const op = "Generator.Sample"
	if size < 1 {
		return nil, errors.NewValueError(op, "size must be at least 1")
	}

	cov := g.cov
	if cov == nil {
		cov, err = g.priorCov()
		if err != nil {
			return nil, err
		}
	}

	if err := checkVectors(op, g.design, vectors); err != nil {
		return nil, err
	}
	X, err := g.design.DesignMatrix(vectors...)
	if err != nil {
		return nil, errors.Wrap(err, "building design matrix")
	}
	rows, cols := X.Dims()
	if cols != g.design.Width() {
		return nil, errors.NewDimensionError(op, g.design.Width(), cols, 1)
	}

	normal, ok := distmv.NewNormal(g.Mu(), cov, g.src)
	if !ok {
		return nil, errors.NewModelError(op, "covariance is not positive definite", nil)
	}

	draw := make([]float64, g.design.Width())
	w := mat.NewVecDense(g.design.Width(), nil)
	y := mat.NewVecDense(rows, nil)
	out = mat.NewDense(rows, size, nil)
	for s := 0; s < size; s++ {
		normal.Rand(draw)
		for j := range draw {
			w.SetVec(j, draw[j])
		}
		y.MulVec(X, w)
		for i := 0; i < rows; i++ {
			out.Set(i, s, y.AtVec(i))
		}
	}
	return out, nil
}

// priorCov returns diag(priorSigma²) when the prior is proper, i.e. every
// sigma is finite.
func (g *Generator) priorCov() (*mat.SymDense, error) {
	width := g.design.Width()
	cov := mat.NewSymDense(width, nil)
	for j := 0; j < width; j++ {
		s := g.priorSigma.AtVec(j)
		if math.IsInf(s, 1) {
			return nil, errors.NewNotFittedError("Generator", "Sample")
		}
		cov.SetSym(j, j, s*s)
	}
	return cov, nil
}

// reshape lays a flat vector out row-major into an r x c dense matrix.
func reshape(v *mat.VecDense, r, c int) *mat.Dense {
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, v.AtVec(i*c+j))
		}
	}
	return out
}
