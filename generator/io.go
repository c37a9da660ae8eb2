package generator

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/goml-tools/lingen/pkg/errors"
)

// jsonFloat round-trips non-finite values, which encoding/json rejects as
// bare numbers. Uninformative priors are +Inf, so this matters.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-inf"`), nil
	case math.IsNaN(v):
		return []byte(`"nan"`), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"inf"`:
		*f = jsonFloat(math.Inf(1))
		return nil
	case `"-inf"`:
		*f = jsonFloat(math.Inf(-1))
		return nil
	case `"nan"`:
		*f = jsonFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

func toJSONFloats(v []float64) []jsonFloat {
	if v == nil {
		return nil
	}
	out := make([]jsonFloat, len(v))
	for i := range v {
		out[i] = jsonFloat(v[i])
	}
	return out
}

func fromJSONFloats(v []jsonFloat) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}

// generatorSpec identifies the serialized format.
type generatorSpec struct {
	Name          string `json:"name"`
	FormatVersion string `json:"format_version"`
}

// generatorParams is the serialized prior/posterior state of a Generator.
// The design itself is not serialized; import requires a generator built
// over a design of matching width.
type generatorParams struct {
	Width      int         `json:"width"`
	ArgNames   []string    `json:"arg_names"`
	PriorMu    []jsonFloat `json:"prior_mu"`
	PriorSigma []jsonFloat `json:"prior_sigma"`
	Fitted     bool        `json:"fitted"`
	FitMu      []jsonFloat `json:"fit_mu,omitempty"`
	FitSigma   []jsonFloat `json:"fit_sigma,omitempty"`
	Cov        []jsonFloat `json:"cov,omitempty"` // row-major width x width
	DataRows   int         `json:"data_rows,omitempty"`
	DataCols   int         `json:"data_cols,omitempty"`
}

// jsonModel is the envelope written by ExportJSON.
type jsonModel struct {
	Spec   generatorSpec   `json:"model_spec"`
	Params generatorParams `json:"params"`
}

// ExportJSON writes the generator's prior and, if present, posterior state
// as a versioned JSON document. An unfitted generator exports its prior
// only.
func (g *Generator) ExportJSON(w io.Writer) error {
	params := generatorParams{
		Width:      g.design.Width(),
		ArgNames:   g.design.ArgNames(),
		PriorMu:    toJSONFloats(g.PriorMean()),
		PriorSigma: toJSONFloats(g.PriorSigma()),
		Fitted:     g.state.IsFitted(),
	}
	if g.state.IsFitted() {
		params.FitMu = toJSONFloats(g.FitMean())
		params.FitSigma = toJSONFloats(g.FitSigma())
		params.Cov = toJSONFloats(symRowMajor(g.cov))
		params.DataRows, params.DataCols = g.state.DataShape()
	}

	doc := jsonModel{
		Spec: generatorSpec{
			Name:          "Generator",
			FormatVersion: "1.0",
		},
		Params: params,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode generator")
	}
	return nil
}

// ImportJSON restores prior and posterior state from a document written by
// ExportJSON. The receiver's design width must match the document.
func (g *Generator) ImportJSON(r io.Reader) error {
	const op = "Generator.ImportJSON"

	var doc jsonModel
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to decode generator")
	}
	if doc.Spec.Name != "Generator" {
		return errors.NewValueError(op, "not a generator document: "+doc.Spec.Name)
	}

	width := g.design.Width()
	p := doc.Params
	if p.Width != width {
		return errors.NewDimensionError(op, width, p.Width, 1)
	}

	priorMu, err := parsePrior("prior_mu", fromJSONFloats(p.PriorMu), width, 0)
	if err != nil {
		return err
	}
	priorSigma, err := parsePriorSigma("prior_sigma", fromJSONFloats(p.PriorSigma), width)
	if err != nil {
		return err
	}

	var fitMu, fitSigma *mat.VecDense
	var cov *mat.SymDense
	if p.Fitted {
		if len(p.FitMu) != width || len(p.FitSigma) != width {
			return errors.NewDimensionError(op, width, len(p.FitMu), 1)
		}
		if len(p.Cov) != width*width {
			return errors.NewDimensionError(op, width*width, len(p.Cov), 1)
		}
		fitMu = mat.NewVecDense(width, fromJSONFloats(p.FitMu))
		fitSigma = mat.NewVecDense(width, fromJSONFloats(p.FitSigma))
		cov = mat.NewSymDense(width, nil)
		flat := fromJSONFloats(p.Cov)
		for i := 0; i < width; i++ {
			for j := i; j < width; j++ {
				cov.SetSym(i, j, flat[i*width+j])
			}
		}
	}

	// All parsed; commit.
	g.priorMu = priorMu
	g.priorSigma = priorSigma
	g.fitMu = fitMu
	g.fitSigma = fitSigma
	g.cov = cov
	g.state.Reset()
	if p.Fitted {
		g.state.SetDataShape(p.DataRows, p.DataCols)
		g.state.SetFitted()
	}
	return nil
}

// Snapshot is a gob-encodable view of a generator's prior and posterior
// state, for use with core/model.SaveModel and LoadModel.
type Snapshot struct {
	Width      int
	ArgNames   []string
	PriorMu    []float64
	PriorSigma []float64
	Fitted     bool
	FitMu      []float64
	FitSigma   []float64
	Cov        []float64 // row-major width x width
	DataRows   int
	DataCols   int
}

// Snapshot captures the generator's state.
func (g *Generator) Snapshot() *Snapshot {
	s := &Snapshot{
		Width:      g.design.Width(),
		ArgNames:   g.design.ArgNames(),
		PriorMu:    g.PriorMean(),
		PriorSigma: g.PriorSigma(),
		Fitted:     g.state.IsFitted(),
	}
	if s.Fitted {
		s.FitMu = g.FitMean()
		s.FitSigma = g.FitSigma()
		s.Cov = symRowMajor(g.cov)
		s.DataRows, s.DataCols = g.state.DataShape()
	}
	return s
}

// RestoreSnapshot applies a snapshot captured from a generator with a
// design of the same width. The receiver keeps its previous state if any
// part of the snapshot fails validation.
func (g *Generator) RestoreSnapshot(s *Snapshot) error {
	const op = "Generator.RestoreSnapshot"
	if s == nil {
		return errors.NewValueError(op, "snapshot must not be nil")
	}
	width := g.design.Width()
	if s.Width != width {
		return errors.NewDimensionError(op, width, s.Width, 1)
	}

	priorMu, err := parsePrior("prior_mu", s.PriorMu, width, 0)
	if err != nil {
		return err
	}
	priorSigma, err := parsePriorSigma("prior_sigma", s.PriorSigma, width)
	if err != nil {
		return err
	}

	var fitMu, fitSigma *mat.VecDense
	var cov *mat.SymDense
	if s.Fitted {
		if len(s.FitMu) != width || len(s.FitSigma) != width {
			return errors.NewDimensionError(op, width, len(s.FitMu), 1)
		}
		if len(s.Cov) != width*width {
			return errors.NewDimensionError(op, width*width, len(s.Cov), 1)
		}
		fitMu = mat.NewVecDense(width, append([]float64(nil), s.FitMu...))
		fitSigma = mat.NewVecDense(width, append([]float64(nil), s.FitSigma...))
		cov = mat.NewSymDense(width, nil)
		for i := 0; i < width; i++ {
			for j := i; j < width; j++ {
				cov.SetSym(i, j, s.Cov[i*width+j])
			}
		}
	}

	// All parsed; commit.
	g.priorMu = priorMu
	g.priorSigma = priorSigma
	g.fitMu = fitMu
	g.fitSigma = fitSigma
	g.cov = cov
	g.state.Reset()
	if s.Fitted {
		g.state.SetDataShape(s.DataRows, s.DataCols)
		g.state.SetFitted()
	}
	return nil
}

// symRowMajor flattens a symmetric matrix row-major.
func symRowMajor(s *mat.SymDense) []float64 {
	if s == nil {
		return nil
	}
	w := s.SymmetricDim()
	out := make([]float64, 0, w*w)
	for i := 0; i < w; i++ {
		for j := 0; j < w; j++ {
			out = append(out, s.At(i, j))
		}
	}
	return out
}
