package generator

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/pkg/errors"
)

// Design is the capability set a concrete generator family must supply.
// A Design is immutable: its argument names, width and symbolic terms are
// fixed at construction, and DesignMatrix is a pure function of its inputs.
type Design interface {
	// ArgNames returns the names of the independent variables the design
	// matrix consumes, in the order DesignMatrix expects them.
	ArgNames() []string

	// Width returns the number of fit coefficients (design-matrix columns).
	Width() int

	// NVectors returns the number of distinct input vectors required to
	// build the design matrix. This may differ from Width, e.g. for
	// cross-term designs.
	NVectors() int

	// DesignMatrix builds the design matrix for the given input vectors.
	// The result has one row per data point and Width columns.
	DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error)

	// Terms returns one symbolic (LaTeX) term per design-matrix column,
	// used only for display.
	Terms() []string
}

// validateDesign checks the structural contract of a Design once, at
// generator construction.
func validateDesign(d Design) error {
	if d == nil {
		return errors.NewValidationError("design", "must not be nil", nil)
	}
	if d.Width() <= 0 {
		return errors.NewValidationError("design", "width must be positive", d.Width())
	}
	if d.NVectors() <= 0 {
		return errors.NewValidationError("design", "nvectors must be positive", d.NVectors())
	}

	names := d.ArgNames()
	if len(names) == 0 {
		return errors.NewValidationError("arg_names", "must not be empty", names)
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return errors.NewValidationError("arg_names", "argument names must be non-empty strings", i)
		}
	}

	if terms := d.Terms(); len(terms) != d.Width() {
		return errors.NewDimensionError("validateDesign", d.Width(), len(terms), 1)
	}
	return nil
}

// checkVectors verifies the number of input vectors handed to a
// design-matrix build and that they are non-nil and equally sized.
func checkVectors(op string, d Design, vectors []*mat.VecDense) error {
	if len(vectors) != d.NVectors() {
		return errors.NewDimensionError(op, d.NVectors(), len(vectors), 1)
	}
	n := -1
	for _, v := range vectors {
		if v == nil {
			return errors.NewValueError(op, "input vectors must not be nil")
		}
		if n < 0 {
			n = v.Len()
		} else if v.Len() != n {
			return errors.NewDimensionError(op, n, v.Len(), 0)
		}
	}
	return nil
}
