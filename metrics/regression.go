// Package metrics provides goodness-of-fit measures for fitted generators.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/pkg/errors"
)

// MSE computes the mean squared error between observed and predicted
// values.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MAE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2 computes the coefficient of determination.
func R2(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("R2", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2", n, yPred.Len(), 0)
	}

	var mean float64
	for i := 0; i < n; i++ {
		mean += yTrue.AtVec(i)
	}
	mean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - mean) * (t - mean)
		rss += (t - p) * (t - p)
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// ReducedChiSquared computes chi²/dof for an error-weighted fit: the sum of
// squared residuals in units of the per-point standard deviation, divided
// by (n - nparams). A value near 1 means the model fits within the quoted
// errors.
func ReducedChiSquared(yTrue, yPred, yErr *mat.VecDense, nparams int) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("ReducedChiSquared", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("ReducedChiSquared", n, yPred.Len(), 0)
	}
	if yErr.Len() != n {
		return 0, errors.NewDimensionError("ReducedChiSquared", n, yErr.Len(), 0)
	}
	dof := n - nparams
	if dof <= 0 {
		return 0, errors.NewValueError("ReducedChiSquared", "degrees of freedom must be positive")
	}

	var chi2 float64
	for i := 0; i < n; i++ {
		e := yErr.AtVec(i)
		if e == 0 {
			return 0, errors.NewValueError("ReducedChiSquared", "zero measurement error")
		}
		r := (yTrue.AtVec(i) - yPred.AtVec(i)) / e
		chi2 += r * r
	}
	return chi2 / float64(dof), nil
}
