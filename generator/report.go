package generator

import (
	"fmt"
	"math"
	"strings"
)

// Equation assembles the typeset model equation, pairing each coefficient
// index with the symbolic term the design supplies for that column:
//
//	\[f(\mathbf{x}) = w_{0} 1 + w_{1} \mathbf{x} + ...\]
func (g *Generator) Equation() string {
	args := g.design.ArgNames()
	sigParts := make([]string, len(args))
	for i, a := range args {
		sigParts[i] = fmt.Sprintf("\\mathbf{%s}", a)
	}

	terms := g.design.Terms()
	eqParts := make([]string, len(terms))
	for i, term := range terms {
		eqParts[i] = fmt.Sprintf("w_{%d} %s", i, term)
	}

	return fmt.Sprintf("\\[f(%s) = %s\\]",
		strings.Join(sigParts, ", "), strings.Join(eqParts, " + "))
}

// FormatSignificantFigures formats a value and its uncertainty to the
// number of decimal places implied by the uncertainty's leading significant
// digit (an error of 0.034 gives 2 decimal places). A zero error means no
// inferred precision and uses 0 decimal places; errors of 10 or more
// likewise round to whole numbers. If either input is infinite or NaN the
// fixed placeholder pair ("0", "\infty") is returned instead of failing,
// so uninformative coefficients never break report generation.
func FormatSignificantFigures(mean, err float64) (string, string) {
	if math.IsInf(mean, 0) || math.IsInf(err, 0) || math.IsNaN(mean) || math.IsNaN(err) {
		return "0", "\\infty"
	}

	decimals := 0
	if err != 0 {
		decimals = -int(math.Floor(math.Log10(math.Abs(err))))
		if decimals < 0 {
			decimals = 0
		}
	}

	return fmt.Sprintf("%.*f", decimals, mean), fmt.Sprintf("%.*f", decimals, err)
}

// tableRows renders one table row per coefficient: its current best value
// with uncertainty, and its prior.
func (g *Generator) tableRows() []string {
	mu, sigma := g.Mu(), g.Sigma()
	rows := make([]string, 0, g.design.Width())
	for idx := 0; idx < g.design.Width(); idx++ {
		fitMean, fitErr := FormatSignificantFigures(mu[idx], sigma[idx])
		priorMean, priorErr := FormatSignificantFigures(g.priorMu.AtVec(idx), g.priorSigma.AtVec(idx))
		row := fmt.Sprintf("$w_{%d}$ & $%s \\pm %s$  & $%s \\pm %s$ \\\\\\hline\n",
			idx, fitMean, fitErr, priorMean, priorErr)
		rows = append(rows, row)
	}
	return rows
}

// latexTable assembles the coefficient rows into a typeset table.
func (g *Generator) latexTable() string {
	var sb strings.Builder
	sb.WriteString("\\begin{table}[h!]\n\\centering\n")
	sb.WriteString("\\begin{tabular}{|c|c|c|}\n\\hline\n")
	sb.WriteString("Coefficient & Best Fit & Prior \\\\\\hline\n")
	for _, row := range g.tableRows() {
		sb.WriteString(row)
	}
	sb.WriteString("\\end{tabular}\n\\end{table}")
	return sb.String()
}

// ToLaTeX returns the full report: the model equation followed by the
// coefficient table.
func (g *Generator) ToLaTeX() string {
	return g.Equation() + "\n" + g.latexTable()
}
