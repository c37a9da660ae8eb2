package designs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/core/parallel"
	"github.com/goml-tools/lingen/pkg/errors"
)

// Rows below this threshold are filled sequentially.
const parallelThreshold = 2048

// Polynomial is a 1-D polynomial basis: columns x^0, x^1, ..., x^degree.
type Polynomial struct {
	arg    string
	degree int
}

// NewPolynomial creates a polynomial design of the given degree in the
// named variable.
func NewPolynomial(arg string, degree int) (*Polynomial, error) {
	if arg == "" {
		return nil, errors.NewValidationError("arg", "must be a non-empty string", arg)
	}
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	return &Polynomial{arg: arg, degree: degree}, nil
}

// ArgNames returns the single variable name.
func (p *Polynomial) ArgNames() []string { return []string{p.arg} }

// Width returns degree+1.
func (p *Polynomial) Width() int { return p.degree + 1 }

// NVectors returns 1.
func (p *Polynomial) NVectors() int { return 1 }

// Terms returns the symbolic term per column.
func (p *Polynomial) Terms() []string {
	terms := make([]string, p.degree+1)
	for j := range terms {
		switch j {
		case 0:
			terms[j] = "1"
		case 1:
			terms[j] = fmt.Sprintf("\\mathbf{%s}", p.arg)
		default:
			terms[j] = fmt.Sprintf("\\mathbf{%s}^{%d}", p.arg, j)
		}
	}
	return terms
}

// DesignMatrix returns the Vandermonde-style matrix for the input vector.
func (p *Polynomial) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	x, err := singleVector("Polynomial.DesignMatrix", vectors)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	width := p.degree + 1
	X := mat.NewDense(n, width, nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			v := x.AtVec(i)
			pow := 1.0
			for j := 0; j < width; j++ {
				X.Set(i, j, pow)
				pow *= v
			}
		}
	})
	return X, nil
}

// Constant is a single column of ones: a free offset term.
type Constant struct {
	arg string
}

// NewConstant creates a constant design over the named variable. The input
// vector is only used for its length.
func NewConstant(arg string) (*Constant, error) {
	if arg == "" {
		return nil, errors.NewValidationError("arg", "must be a non-empty string", arg)
	}
	return &Constant{arg: arg}, nil
}

// ArgNames returns the single variable name.
func (c *Constant) ArgNames() []string { return []string{c.arg} }

// Width returns 1.
func (c *Constant) Width() int { return 1 }

// NVectors returns 1.
func (c *Constant) NVectors() int { return 1 }

// Terms returns the single symbolic term.
func (c *Constant) Terms() []string { return []string{"1"} }

// DesignMatrix returns a column of ones with one row per input element.
func (c *Constant) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	x, err := singleVector("Constant.DesignMatrix", vectors)
	if err != nil {
		return nil, err
	}
	n := x.Len()
	X := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}
	return X, nil
}

// singleVector unwraps the one input vector single-variable designs take.
func singleVector(op string, vectors []*mat.VecDense) (*mat.VecDense, error) {
	if len(vectors) != 1 {
		return nil, errors.NewDimensionError(op, 1, len(vectors), 1)
	}
	if vectors[0] == nil {
		return nil, errors.NewValueError(op, "input vector must not be nil")
	}
	if vectors[0].Len() == 0 {
		return nil, errors.NewModelError(op, "empty input vector", errors.ErrEmptyData)
	}
	return vectors[0], nil
}
