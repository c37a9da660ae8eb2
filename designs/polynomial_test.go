package designs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/generator"
)

func linspace(lo, hi float64, n int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		v.SetVec(i, lo+float64(i)*step)
	}
	return v
}

func TestNewPolynomialValidation(t *testing.T) {
	if _, err := NewPolynomial("", 2); err == nil {
		t.Error("expected error for empty arg name")
	}
	if _, err := NewPolynomial("x", -1); err == nil {
		t.Error("expected error for negative degree")
	}
}

func TestPolynomialShape(t *testing.T) {
	p, err := NewPolynomial("x", 3)
	require.NoError(t, err)

	assert.Equal(t, 4, p.Width())
	assert.Equal(t, 1, p.NVectors())
	assert.Equal(t, []string{"x"}, p.ArgNames())
	assert.Len(t, p.Terms(), 4)

	X, err := p.DesignMatrix(linspace(0, 1, 7))
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 7, r)
	assert.Equal(t, 4, c)
}

func TestPolynomialColumns(t *testing.T) {
	p, err := NewPolynomial("x", 2)
	require.NoError(t, err)

	X, err := p.DesignMatrix(mat.NewVecDense(3, []float64{0, 2, -1}))
	require.NoError(t, err)

	// Row for x=2: [1, 2, 4].
	assert.Equal(t, 1.0, X.At(1, 0))
	assert.Equal(t, 2.0, X.At(1, 1))
	assert.Equal(t, 4.0, X.At(1, 2))
	// Row for x=-1: [1, -1, 1].
	assert.Equal(t, -1.0, X.At(2, 1))
	assert.Equal(t, 1.0, X.At(2, 2))
}

func TestPolynomialLargeInputParallelFill(t *testing.T) {
	// Above the parallel threshold the fill must still be exact.
	p, err := NewPolynomial("x", 2)
	require.NoError(t, err)

	n := parallelThreshold * 3
	x := linspace(-1, 1, n)
	X, err := p.DesignMatrix(x)
	require.NoError(t, err)

	for _, i := range []int{0, n / 2, n - 1} {
		v := x.AtVec(i)
		assert.InDelta(t, 1.0, X.At(i, 0), 1e-14)
		assert.InDelta(t, v, X.At(i, 1), 1e-14)
		assert.InDelta(t, v*v, X.At(i, 2), 1e-14)
	}
}

func TestPolynomialFitRecoversCoefficients(t *testing.T) {
	// End to end: generate y = 2 - x + 0.5x² exactly and recover the
	// coefficients with an uninformative prior.
	p, err := NewPolynomial("x", 2)
	require.NoError(t, err)
	g, err := generator.New(p)
	require.NoError(t, err)

	x := linspace(-3, 3, 25)
	y := mat.NewVecDense(x.Len(), nil)
	for i := 0; i < x.Len(); i++ {
		v := x.AtVec(i)
		y.SetVec(i, 2-v+0.5*v*v)
	}

	require.NoError(t, g.Fit(y, nil, nil, x))

	mu := g.FitMean()
	assert.InDelta(t, 2.0, mu[0], 1e-8)
	assert.InDelta(t, -1.0, mu[1], 1e-8)
	assert.InDelta(t, 0.5, mu[2], 1e-8)
}

func TestConstantDesign(t *testing.T) {
	c, err := NewConstant("t")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Width())
	assert.Equal(t, []string{"1"}, c.Terms())

	X, err := c.DesignMatrix(linspace(0, 10, 5))
	require.NoError(t, err)
	r, cols := X.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 1, cols)
	for i := 0; i < r; i++ {
		assert.Equal(t, 1.0, X.At(i, 0))
	}
}

func TestSingleVectorValidation(t *testing.T) {
	p, err := NewPolynomial("x", 1)
	require.NoError(t, err)

	if _, err := p.DesignMatrix(); err == nil {
		t.Error("expected error for missing input vector")
	}
	if _, err := p.DesignMatrix(nil); err == nil {
		t.Error("expected error for nil input vector")
	}
	if _, err := p.DesignMatrix(&mat.VecDense{}); err == nil {
		t.Error("expected error for empty input vector")
	}
	if _, err := p.DesignMatrix(linspace(0, 1, 3), linspace(0, 1, 3)); err == nil {
		t.Error("expected error for too many input vectors")
	}
}

func TestPolynomialEquationThroughGenerator(t *testing.T) {
	p, err := NewPolynomial("phase", 2)
	require.NoError(t, err)
	g, err := generator.New(p)
	require.NoError(t, err)

	eq := g.Equation()
	assert.Contains(t, eq, "\\mathbf{phase}")
	assert.Contains(t, eq, "w_{2} \\mathbf{phase}^{2}")
}
