// Package generator implements linear-in-coefficients model fitting with
// Gaussian priors (maximum-a-posteriori / ridge-regularized weighted least
// squares).
//
// A Generator pairs a Design (which knows how to build a design matrix from
// named input vectors) with a per-coefficient Gaussian prior. Fit computes
// the posterior mean and covariance over coefficients; Evaluate and Sample
// use the fitted coefficients when present, and fall back to the prior
// otherwise, so fitting is optional.
package generator

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/core/model"
	"github.com/goml-tools/lingen/pkg/errors"
)

// Generator fits a linear model defined by a Design to observed data.
//
// The zero value is not usable; construct with New.
type Generator struct {
	design Design
	state  *model.StateManager

	priorMu    *mat.VecDense
	priorSigma *mat.VecDense

	// Posterior state, nil until a fit succeeds. All four are assigned
	// together, after the whole solve has completed.
	fitMu    *mat.VecDense
	fitSigma *mat.VecDense
	cov      *mat.SymDense

	src rand.Source
}

// Option configures a Generator at construction.
type Option func(*options)

type options struct {
	priorMu    []float64
	priorSigma []float64
	src        rand.Source
}

// WithPriorMean sets the prior mean per coefficient. Zero values keep the
// default (all zeros), a single value is broadcast to every coefficient,
// and exactly Width values are used as given. Any other count fails
// construction with ErrCannotParsePrior.
func WithPriorMean(v ...float64) Option {
	return func(o *options) { o.priorMu = v }
}

// WithPriorSigma sets the prior standard deviation per coefficient.
// Broadcasting follows WithPriorMean; the default is +Inf everywhere
// (an uninformative prior, i.e. ordinary least squares). Entries must not
// be negative; +Inf is allowed.
func WithPriorSigma(v ...float64) Option {
	return func(o *options) { o.priorSigma = v }
}

// WithRandSource sets the random source used by Sample. The default is
// the shared global source.
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// New creates a Generator over the given design. The design contract and
// the priors are validated once, here; a validation failure leaves nothing
// constructed.
func New(design Design, opts ...Option) (*Generator, error) {
	// The design is caller-supplied; a panicking implementation surfaces
	// as an error rather than crashing construction.
	if err := errors.SafeExecute("generator.New", func() error {
		return validateDesign(design)
	}); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	width := design.Width()
	priorMu, err := parsePrior("prior_mu", o.priorMu, width, 0)
	if err != nil {
		return nil, err
	}
	priorSigma, err := parsePriorSigma("prior_sigma", o.priorSigma, width)
	if err != nil {
		return nil, err
	}

	return &Generator{
		design:     design,
		state:      model.NewStateManager(),
		priorMu:    priorMu,
		priorSigma: priorSigma,
		src:        o.src,
	}, nil
}

// Design returns the underlying design.
func (g *Generator) Design() Design { return g.design }

// ArgNames returns the design's argument names.
func (g *Generator) ArgNames() []string { return g.design.ArgNames() }

// Width returns the number of fit coefficients.
func (g *Generator) Width() int { return g.design.Width() }

// NVectors returns the number of input vectors the design matrix needs.
func (g *Generator) NVectors() int { return g.design.NVectors() }

// IsFitted reports whether Fit has completed successfully.
func (g *Generator) IsFitted() bool { return g.state.IsFitted() }

// DataShape returns the (rows, cols) shape of the last fitted dataset, or
// (0, 0) before any fit.
func (g *Generator) DataShape() (rows, cols int) { return g.state.DataShape() }

// PriorMean returns a copy of the prior mean vector.
func (g *Generator) PriorMean() []float64 { return vecSlice(g.priorMu) }

// PriorSigma returns a copy of the prior standard-deviation vector.
func (g *Generator) PriorSigma() []float64 { return vecSlice(g.priorSigma) }

// FitMean returns a copy of the posterior mean, or nil before any fit.
func (g *Generator) FitMean() []float64 { return vecSlice(g.fitMu) }

// FitSigma returns a copy of the posterior standard deviation, or nil
// before any fit.
func (g *Generator) FitSigma() []float64 { return vecSlice(g.fitSigma) }

// Mu returns the current best coefficient means: the posterior when fitted,
// the prior otherwise.
func (g *Generator) Mu() []float64 {
	if g.fitMu != nil {
		return vecSlice(g.fitMu)
	}
	return vecSlice(g.priorMu)
}

// Sigma returns the current best coefficient standard deviations: the
// posterior when fitted, the prior otherwise.
func (g *Generator) Sigma() []float64 {
	if g.fitSigma != nil {
		return vecSlice(g.fitSigma)
	}
	return vecSlice(g.priorSigma)
}

// Cov returns a copy of the posterior covariance, or nil before any fit.
func (g *Generator) Cov() *mat.SymDense {
	if g.cov == nil {
		return nil
	}
	w := g.cov.SymmetricDim()
	out := mat.NewSymDense(w, nil)
	out.CopySym(g.cov)
	return out
}

// Copy returns a fully independent generator: its prior and posterior state
// share nothing with the original. The design itself is immutable and is
// shared.
func (g *Generator) Copy() *Generator {
	return &Generator{
		design:     g.design,
		state:      g.state.Clone(),
		priorMu:    cloneVec(g.priorMu),
		priorSigma: cloneVec(g.priorSigma),
		fitMu:      cloneVec(g.fitMu),
		fitSigma:   cloneVec(g.fitSigma),
		cov:        cloneSym(g.cov),
		src:        g.src,
	}
}

// WithPriors returns an independent copy of g with new priors, leaving g
// untouched. mu and sigma follow the same broadcast rules as WithPriorMean
// and WithPriorSigma. Any existing fit results are carried over unchanged;
// a subsequent Fit on the copy combines the data with the new priors.
func (g *Generator) WithPriors(mu, sigma []float64) (*Generator, error) {
	width := g.design.Width()
	priorMu, err := parsePrior("prior_mu", mu, width, 0)
	if err != nil {
		return nil, err
	}
	priorSigma, err := parsePriorSigma("prior_sigma", sigma, width)
	if err != nil {
		return nil, err
	}

	out := g.Copy()
	out.priorMu = priorMu
	out.priorSigma = priorSigma
	return out, nil
}

// Save persists the generator to a file. Deferred to concrete families;
// the base implementation is intentionally unimplemented. See ExportJSON
// for fitted-parameter interchange.
func (g *Generator) Save(filename string) error {
	return errors.Wrapf(errors.ErrNotImplemented, "Generator.Save(%q)", filename)
}

// Load restores the generator from a file. Deferred to concrete families;
// the base implementation is intentionally unimplemented.
func (g *Generator) Load(filename string) error {
	return errors.Wrapf(errors.ErrNotImplemented, "Generator.Load(%q)", filename)
}

// String implements fmt.Stringer.
func (g *Generator) String() string {
	return fmt.Sprintf("Generator(%s)[%d]", strings.Join(g.design.ArgNames(), ", "), g.design.Width())
}

func vecSlice(v *mat.VecDense) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func cloneVec(v *mat.VecDense) *mat.VecDense {
	if v == nil {
		return nil
	}
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}

func cloneSym(s *mat.SymDense) *mat.SymDense {
	if s == nil {
		return nil
	}
	out := mat.NewSymDense(s.SymmetricDim(), nil)
	out.CopySym(s)
	return out
}
