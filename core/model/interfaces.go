package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for models that learn coefficients from data.
type Fitter interface {
	// Fit solves for coefficients given data, per-point errors, a mask and
	// the input vectors the design matrix is built from.
	Fit(data mat.Matrix, errs mat.Matrix, mask []bool, vectors ...*mat.VecDense) error
}

// Evaluator is the interface for models that can be evaluated on a grid.
type Evaluator interface {
	// Evaluate returns the model output at the current coefficients.
	Evaluate(vectors ...*mat.VecDense) (mat.Matrix, error)
}

// Sampler is the interface for models that can propagate coefficient
// uncertainty into output space.
type Sampler interface {
	// Sample returns size realizations of the model, one per column.
	Sample(size int, vectors ...*mat.VecDense) (*mat.Dense, error)
}

// Reporter is the interface for models that can describe themselves.
type Reporter interface {
	// Equation returns a typeset form of the model equation.
	Equation() string
	// ToLaTeX returns the equation followed by a coefficient table.
	ToLaTeX() string
}

// Model combines the full generator capability set.
type Model interface {
	Fitter
	Evaluator
	Sampler
	Reporter
}
