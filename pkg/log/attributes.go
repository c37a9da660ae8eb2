// Package log defines standard attribute keys for generator fitting
// operations.
//
// Using these keys consistently keeps structured logs filterable across the
// library: which generator ran, which operation (fit, evaluate, sample), how
// large the design matrix was, and how the solve went.
package log

// Generator and operation context.
const (
	// GeneratorNameKey identifies the generator's design family.
	// Examples: "designs.Polynomial", "designs.Stack"
	GeneratorNameKey = "generator.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "evaluate", "sample", "report"
	OperationKey = "gen.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "generator", "designs", "metrics"
	ComponentKey = "gen.component"
)

// Design matrix and data characteristics.
const (
	// RowsKey is the number of data points (design-matrix rows).
	RowsKey = "design.rows"

	// WidthKey is the number of fit coefficients (design-matrix columns).
	WidthKey = "design.width"

	// MaskedKey is the number of points excluded by the fit mask.
	MaskedKey = "fit.masked"
)

// Fit diagnostics.
const (
	// DurationMsKey records the wall-clock duration of an operation in
	// milliseconds.
	DurationMsKey = "duration_ms"

	// ConditionKey records the condition the warning or error refers to,
	// e.g. "ill-conditioned", "zero prior sigma".
	ConditionKey = "fit.condition"
)
