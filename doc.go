// Package lingen fits models that are linear in their coefficients to
// noisy data using weighted least squares with Gaussian priors.
//
// A model is described by a Design, which maps input vectors to a design
// matrix whose columns are the model's basis terms. A Generator wraps a
// Design together with per-coefficient priors and, after fitting, the
// posterior mean and covariance of the coefficients.
//
// # Quick Start
//
// Fit a cubic polynomial to noisy data:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/goml-tools/lingen/designs"
//	    "github.com/goml-tools/lingen/generator"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    design, err := designs.NewPolynomial("x", 3)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    g, err := generator.New(design)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := mat.NewVecDense(4, []float64{0, 1, 2, 3})
//	    y := mat.NewVecDense(4, []float64{1, 2, 9, 28})
//	    if err := g.Fit(y, nil, nil, x); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(g.FitMean())
//	    fmt.Println(g.ToLaTeX())
//	}
//
// # Packages
//
//   - generator: the Generator type, fitting, evaluation, sampling and
//     LaTeX reporting
//   - designs: built-in design families (Polynomial, Sinusoid,
//     GaussianBumps, BSpline) and the Stack combinator
//   - metrics: regression metrics (MSE, RMSE, MAE, R², reduced chi-squared)
//   - core/model: fitted-state tracking and model persistence
//   - core/parallel: parallel processing utilities
//
// Priors are Gaussian per coefficient. The default prior is uninformative
// (+Inf standard deviation), which reduces the fit to weighted ordinary
// least squares. Finite prior sigmas regularize the fit toward the prior
// mean.
package lingen
