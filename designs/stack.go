package designs

import (
	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/generator"
	"github.com/goml-tools/lingen/pkg/errors"
)

// Stack combines designs column-wise: the stacked design matrix is the
// horizontal concatenation of each part's matrix, so one fit solves for
// all parts' coefficients jointly. Input vectors are consumed in order,
// NVectors each per part.
type Stack struct {
	parts []generator.Design
}

// NewStack creates a combined design from two or more parts.
func NewStack(parts ...generator.Design) (*Stack, error) {
	if len(parts) < 2 {
		return nil, errors.NewValidationError("parts", "need at least two designs to stack", len(parts))
	}
	for _, p := range parts {
		if p == nil {
			return nil, errors.NewValidationError("parts", "must not contain nil designs", nil)
		}
	}
	return &Stack{parts: append([]generator.Design(nil), parts...)}, nil
}

// Parts returns the stacked designs in order.
func (s *Stack) Parts() []generator.Design {
	return append([]generator.Design(nil), s.parts...)
}

// ArgNames returns the concatenated argument names of all parts.
func (s *Stack) ArgNames() []string {
	var names []string
	for _, p := range s.parts {
		names = append(names, p.ArgNames()...)
	}
	return names
}

// Width returns the sum of the parts' widths.
func (s *Stack) Width() int {
	total := 0
	for _, p := range s.parts {
		total += p.Width()
	}
	return total
}

// NVectors returns the sum of the parts' input-vector counts.
func (s *Stack) NVectors() int {
	total := 0
	for _, p := range s.parts {
		total += p.NVectors()
	}
	return total
}

// Terms returns the concatenated symbolic terms of all parts.
func (s *Stack) Terms() []string {
	var terms []string
	for _, p := range s.parts {
		terms = append(terms, p.Terms()...)
	}
	return terms
}

// DesignMatrix builds each part's matrix from its slice of the input
// vectors and concatenates them column-wise. All parts must produce the
// same number of rows.
func (s *Stack) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	const op = "Stack.DesignMatrix"
	if len(vectors) != s.NVectors() {
		return nil, errors.NewDimensionError(op, s.NVectors(), len(vectors), 1)
	}

	mats := make([]*mat.Dense, len(s.parts))
	rows := -1
	offset := 0
	for i, p := range s.parts {
		sub := vectors[offset : offset+p.NVectors()]
		offset += p.NVectors()

		X, err := p.DesignMatrix(sub...)
		if err != nil {
			return nil, err
		}
		r, _ := X.Dims()
		if rows < 0 {
			rows = r
		} else if r != rows {
			return nil, errors.NewDimensionError(op, rows, r, 0)
		}
		mats[i] = X
	}

	out := mat.NewDense(rows, s.Width(), nil)
	col := 0
	for _, X := range mats {
		_, c := X.Dims()
		for j := 0; j < c; j++ {
			for i := 0; i < rows; i++ {
				out.Set(i, col, X.At(i, j))
			}
			col++
		}
	}
	return out, nil
}
