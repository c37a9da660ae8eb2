package generator

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	flog "github.com/goml-tools/lingen/pkg/log"

	"github.com/goml-tools/lingen/pkg/errors"
)

// Fit solves the prior-weighted normal equations for the design evaluated
// at the given input vectors:
//
//	A = Xᵀ·diag(1/errs²)·X + diag(1/priorSigma²)
//	b = Xᵀ·(data/errs²)   + priorMu/priorSigma²
//
// The posterior covariance is A⁻¹ and the posterior mean solves A·mu = b.
// The prior precision diag(1/priorSigma²) acts as ridge regularization and
// vanishes where priorSigma is infinite.
//
// data may be any matrix shape; its row-major flattening must have exactly
// as many elements as the design matrix has rows. errs holds per-point
// standard deviations and must either match data's shape or be a single
// value broadcast to every point; nil means uniform errors of 1. mask
// selects flattened points to include; nil includes everything.
//
// Only the prior mean term guards against an infinite priorSigma (its
// contribution is zero, not NaN). A priorSigma of exactly zero is not
// guarded: the infinite precision term propagates into the normal
// equations, and the resulting non-finite posterior is rejected before
// any state is committed.
//
// No state is mutated unless the whole solve succeeds. Repeated calls
// overwrite the previous posterior.
func (g *Generator) Fit(data mat.Matrix, errs mat.Matrix, mask []bool, vectors ...*mat.VecDense) (err error) {
	defer errors.Recover(&err, "Generator.Fit")

	const op = "Generator.Fit"
	start := time.Now()
	width := g.design.Width()

	if data == nil {
		return errors.NewModelError(op, "no data", errors.ErrEmptyData)
	}
	dataRows, dataCols := data.Dims()
	n := dataRows * dataCols
	if n == 0 {
		return errors.NewModelError(op, "no data", errors.ErrEmptyData)
	}

	if err := checkVectors(op, g.design, vectors); err != nil {
		return err
	}
	X, err := g.design.DesignMatrix(vectors...)
	if err != nil {
		return errors.Wrap(err, "building design matrix")
	}
	rows, cols := X.Dims()
	if cols != width {
		return errors.NewDimensionError(op, width, cols, 1)
	}
	if n != rows {
		return errors.NewDimensionError(op, rows, n, 0)
	}

	flat := flatten(data)
	sigmas, err := flattenErrors(op, errs, dataRows, dataCols)
	if err != nil {
		return err
	}

	if mask == nil {
		mask = make([]bool, n)
		for i := range mask {
			mask[i] = true
		}
	} else if len(mask) != n {
		return errors.NewDimensionError(op, n, len(mask), 0)
	}

	// Masked-out points may hold anything, including NaN; only the points
	// entering the solve must be finite.
	nUsed := 0
	used := make([]float64, 0, n)
	for i, keep := range mask {
		if !keep {
			continue
		}
		nUsed++
		used = append(used, flat[i])
		if sigmas[i] == 0 {
			errors.Warn(errors.NewDegenerateFitWarning(op, "zero measurement error",
				"a data point with zero error gives it infinite weight"))
		} else if scalarErr := errors.CheckScalar(op+": measurement errors", sigmas[i]); scalarErr != nil {
			return scalarErr
		}
	}
	if nUsed == 0 {
		return errors.NewModelError(op, "mask excludes every point", errors.ErrEmptyData)
	}
	if stabErr := errors.CheckNumericalStability(op+": data", used); stabErr != nil {
		return stabErr
	}

	// Scale masked rows by 1/sigma so that XsᵀXs and Xsᵀds are exactly the
	// error-weighted sums of the normal equations.
	Xs := mat.NewDense(nUsed, width, nil)
	ds := mat.NewVecDense(nUsed, nil)
	row := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		w := 1 / sigmas[i]
		for j := 0; j < width; j++ {
			Xs.Set(row, j, X.At(i, j)*w)
		}
		ds.SetVec(row, flat[i]*w)
		row++
	}

	var A mat.Dense
	A.Mul(Xs.T(), Xs)

	var b mat.VecDense
	b.MulVec(Xs.T(), ds)

	// Add the prior precision and the prior-weighted right-hand side.
	for j := 0; j < width; j++ {
		ps := g.priorSigma.AtVec(j)
		if ps == 0 {
			errors.Warn(errors.NewDegenerateFitWarning(op, "zero prior sigma",
				"the prior precision term is infinite"))
		}
		A.Set(j, j, A.At(j, j)+1/(ps*ps))
		if !math.IsInf(ps, 1) {
			b.SetVec(j, b.AtVec(j)+g.priorMu.AtVec(j)/(ps*ps))
		}
	}

	var covDense mat.Dense
	if invErr := covDense.Inverse(&A); invErr != nil {
		var cond mat.Condition
		if !errors.As(invErr, &cond) || math.IsInf(float64(cond), 1) {
			return errors.NewModelError(op, "normal-equation matrix not invertible", errors.ErrSingularMatrix)
		}
		errors.Warn(errors.NewDegenerateFitWarning(op, "ill-conditioned",
			invErr.Error()))
		slog.Warn("normal equations ill-conditioned",
			slog.String(flog.ConditionKey, "ill-conditioned"),
			slog.String(flog.GeneratorNameKey, designName(g.design)),
		)
	}

	var fitMu mat.VecDense
	if solveErr := fitMu.SolveVec(&A, &b); solveErr != nil {
		var cond mat.Condition
		if !errors.As(solveErr, &cond) || math.IsInf(float64(cond), 1) {
			return errors.NewModelError(op, "normal-equation solve failed", errors.ErrSingularMatrix)
		}
	}

	// Symmetrize the inverse; round-off leaves it asymmetric at machine
	// precision.
	cov := mat.NewSymDense(width, nil)
	fitSigma := mat.NewVecDense(width, nil)
	for i := 0; i < width; i++ {
		for j := i; j < width; j++ {
			cov.SetSym(i, j, 0.5*(covDense.At(i, j)+covDense.At(j, i)))
		}
		fitSigma.SetVec(i, math.Sqrt(cov.At(i, i)))
	}

	// Non-finite data, a zero prior sigma, or a near-singular solve can
	// leave NaN or Inf in the posterior. Refuse to commit it.
	if stabErr := errors.CheckMatrix(op+": posterior mean", &fitMu, width, 1); stabErr != nil {
		return stabErr
	}
	if stabErr := errors.CheckMatrix(op+": posterior covariance", cov, width, width); stabErr != nil {
		return stabErr
	}

	g.fitMu = &fitMu
	g.fitSigma = fitSigma
	g.cov = cov
	g.state.SetDataShape(dataRows, dataCols)
	g.state.SetFitted()

	slog.Debug("fit complete",
		slog.String(flog.ComponentKey, "generator"),
		slog.String(flog.GeneratorNameKey, designName(g.design)),
		slog.String(flog.OperationKey, "fit"),
		slog.Int(flog.RowsKey, rows),
		slog.Int(flog.WidthKey, width),
		slog.Int(flog.MaskedKey, n-nUsed),
		slog.Int64(flog.DurationMsKey, time.Since(start).Milliseconds()),
	)
	return nil
}

// designName derives a display name for log records from the design's
// concrete type, e.g. "designs.Polynomial".
func designName(d Design) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", d), "*")
}

// flatten returns the row-major flattening of m.
func flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// flattenErrors resolves the per-point error specification against the
// data shape: nil means uniform 1, a 1x1 matrix broadcasts, and anything
// else must match the data's dimensions exactly.
func flattenErrors(op string, errs mat.Matrix, dataRows, dataCols int) ([]float64, error) {
	n := dataRows * dataCols
	if errs == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}

	er, ec := errs.Dims()
	if er == 1 && ec == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = errs.At(0, 0)
		}
		return out, nil
	}
	if er != dataRows || ec != dataCols {
		if er*ec != n {
			return nil, errors.NewDimensionError(op, n, er*ec, 0)
		}
		// Same element count, different layout: accept the flattening.
	}
	return flatten(errs), nil
}
