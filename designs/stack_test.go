package designs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/generator"
)

func TestNewStackValidation(t *testing.T) {
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)

	if _, err := NewStack(p); err == nil {
		t.Error("expected error for fewer than two parts")
	}
	if _, err := NewStack(p, nil); err == nil {
		t.Error("expected error for nil part")
	}
}

func TestStackShape(t *testing.T) {
	p, err := NewPolynomial("x", 2)
	require.NoError(t, err)
	s, err := NewSinusoid("phi", 1)
	require.NoError(t, err)

	stack, err := NewStack(p, s)
	require.NoError(t, err)

	assert.Equal(t, 3+3, stack.Width())
	assert.Equal(t, 2, stack.NVectors())
	assert.Equal(t, []string{"x", "phi"}, stack.ArgNames())
	assert.Len(t, stack.Terms(), 6)
}

func TestStackDesignMatrixConcatenatesColumns(t *testing.T) {
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)
	c, err := NewGaussianBumps("y", []float64{0}, 1)
	require.NoError(t, err)

	stack, err := NewStack(p, c)
	require.NoError(t, err)

	x := mat.NewVecDense(2, []float64{1, 2})
	yv := mat.NewVecDense(2, []float64{0, 1})
	X, err := stack.DesignMatrix(x, yv)
	require.NoError(t, err)

	r, cols := X.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, cols)

	// First two columns from the polynomial, last from the bump.
	assert.Equal(t, 1.0, X.At(0, 0))
	assert.Equal(t, 1.0, X.At(0, 1))
	assert.InDelta(t, 1.0, X.At(0, 2), 1e-12)           // exp(0)
	assert.InDelta(t, math.Exp(-0.5), X.At(1, 2), 1e-12) // exp(-1/2)
}

func TestStackRowMismatch(t *testing.T) {
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)
	q, err := NewPolynomial("y", 1)
	require.NoError(t, err)

	stack, err := NewStack(p, q)
	require.NoError(t, err)

	_, err = stack.DesignMatrix(linspace(0, 1, 4), linspace(0, 1, 5))
	require.Error(t, err)
}

func TestStackVectorCountMismatch(t *testing.T) {
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)
	q, err := NewPolynomial("y", 1)
	require.NoError(t, err)

	stack, err := NewStack(p, q)
	require.NoError(t, err)

	_, err = stack.DesignMatrix(linspace(0, 1, 4))
	require.Error(t, err)
}

func TestStackJointFit(t *testing.T) {
	// Fit a line in x plus a sinusoid in phi jointly and recover both
	// sets of coefficients.
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)
	s, err := NewSinusoid("phi", 1)
	require.NoError(t, err)
	stack, err := NewStack(p, s)
	require.NoError(t, err)

	// The sinusoid carries its own constant column, which duplicates the
	// polynomial's intercept. A tight prior at zero on the duplicate keeps
	// the joint problem well posed.
	inf := math.Inf(1)
	g, err := generator.New(stack,
		generator.WithPriorSigma(inf, inf, 1e-8, inf, inf),
	)
	require.NoError(t, err)

	n := 90
	x := mat.NewVecDense(n, nil)
	phi := mat.NewVecDense(n, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		xv := float64(i) / float64(n)
		pv := 2 * math.Pi * float64(i) / float64(n) * 3.7
		x.SetVec(i, xv)
		phi.SetVec(i, pv)
		y.SetVec(i, 0.5+1.5*xv+0.8*math.Sin(pv)-0.3*math.Cos(pv))
	}

	require.NoError(t, g.Fit(y, nil, nil, x, phi))

	mu := g.FitMean()
	assert.InDelta(t, 0.5, mu[0], 1e-3)  // intercept
	assert.InDelta(t, 1.5, mu[1], 1e-3)  // slope
	assert.InDelta(t, 0.0, mu[2], 1e-3)  // pinned duplicate constant
	assert.InDelta(t, 0.8, mu[3], 1e-3)  // sin amplitude
	assert.InDelta(t, -0.3, mu[4], 1e-3) // cos amplitude
}
