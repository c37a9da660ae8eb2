package designs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/core/parallel"
	"github.com/goml-tools/lingen/pkg/errors"
)

// Sinusoid is a harmonic basis: a constant column followed by
// sin(k·x), cos(k·x) pairs for k = 1..nharmonics. The input variable is
// expected in radians.
type Sinusoid struct {
	arg        string
	nharmonics int
}

// NewSinusoid creates a sinusoid design with the given number of harmonics.
func NewSinusoid(arg string, nharmonics int) (*Sinusoid, error) {
	if arg == "" {
		return nil, errors.NewValidationError("arg", "must be a non-empty string", arg)
	}
	if nharmonics < 1 {
		return nil, errors.NewValidationError("nharmonics", "must be at least 1", nharmonics)
	}
	return &Sinusoid{arg: arg, nharmonics: nharmonics}, nil
}

// ArgNames returns the single variable name.
func (s *Sinusoid) ArgNames() []string { return []string{s.arg} }

// Width returns 2*nharmonics + 1.
func (s *Sinusoid) Width() int { return 2*s.nharmonics + 1 }

// NVectors returns 1.
func (s *Sinusoid) NVectors() int { return 1 }

// Terms returns the symbolic term per column.
func (s *Sinusoid) Terms() []string {
	terms := make([]string, 0, s.Width())
	terms = append(terms, "1")
	for k := 1; k <= s.nharmonics; k++ {
		freq := fmt.Sprintf("%d", k)
		if k == 1 {
			freq = ""
		}
		terms = append(terms,
			fmt.Sprintf("\\sin(%s\\mathbf{%s})", freq, s.arg),
			fmt.Sprintf("\\cos(%s\\mathbf{%s})", freq, s.arg),
		)
	}
	return terms
}

// DesignMatrix returns the harmonic matrix for the input vector.
func (s *Sinusoid) DesignMatrix(vectors ...*mat.VecDense) (*mat.Dense, error) {
	x, err := singleVector("Sinusoid.DesignMatrix", vectors)
	if err != nil {
		return nil, err
	}

	n := x.Len()
	X := mat.NewDense(n, s.Width(), nil)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			v := x.AtVec(i)
			X.Set(i, 0, 1)
			for k := 1; k <= s.nharmonics; k++ {
				X.Set(i, 2*k-1, math.Sin(float64(k)*v))
				X.Set(i, 2*k, math.Cos(float64(k)*v))
			}
		}
	})
	return X, nil
}
