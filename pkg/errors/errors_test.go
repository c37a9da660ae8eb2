package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "lingen: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Sample",
			kind:     "no covariance",
			err:      nil,
			wantMsg:  "lingen: Sample: no covariance",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			if tt.err != nil {
				var modelErr *ModelError
				if !As(err, &modelErr) {
					t.Fatal("expected error to be a *ModelError")
				}
				if !Is(err, tt.err) {
					t.Error("expected wrapped error to match original")
				}
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Generator", "Sample")
	want := "lingen: Generator: this generator is not fitted yet. Call Fit() before using Sample()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatal("expected error to be a *NotFittedError")
	}
	if nfe.ModelName != "Generator" || nfe.Method != "Sample" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{
			name: "row axis",
			axis: 0,
			want: "lingen: Generator.Fit: dimension mismatch on axis 0 (rows). Expected 10, got 8",
		},
		{
			name: "column axis",
			axis: 1,
			want: "lingen: Generator.Fit: dimension mismatch on axis 1 (columns). Expected 10, got 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Generator.Fit", 10, 8, tt.axis)
			if err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("prior_sigma", "entries must be positive", -1.0)
	if !strings.Contains(err.Error(), "prior_sigma") {
		t.Errorf("expected parameter name in message, got %v", err)
	}
	if !strings.Contains(err.Error(), "entries must be positive") {
		t.Errorf("expected reason in message, got %v", err)
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := Wrap(ErrCannotParsePrior, "prior_mu")
	if !Is(wrapped, ErrCannotParsePrior) {
		t.Error("wrapped sentinel should match ErrCannotParsePrior")
	}
	if Is(wrapped, ErrSingularMatrix) {
		t.Error("wrapped sentinel should not match an unrelated sentinel")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	warning := NewDegenerateFitWarning("Generator.Fit", "zero prior sigma", "coefficient 2")
	Warn(warning)

	if captured == nil {
		t.Fatal("expected warning handler to be invoked")
	}
	if !strings.Contains(captured.Error(), "zero prior sigma") {
		t.Errorf("unexpected warning message: %v", captured)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"finite values", []float64{1.0, -2.5, 3.7}, false},
		{"contains NaN", []float64{1.0, math.NaN(), 3.7}, true},
		{"contains Inf", []float64{1.0, math.Inf(1)}, true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("test", tt.values)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("test", 1.5); err != nil {
		t.Errorf("CheckScalar(1.5) = %v, want nil", err)
	}
	if err := CheckScalar("test", math.NaN()); err == nil {
		t.Error("CheckScalar(NaN) = nil, want error")
	}
	if err := CheckScalar("test", math.Inf(-1)); err == nil {
		t.Error("CheckScalar(-Inf) = nil, want error")
	}
}

type testMatrix [][]float64

func (m testMatrix) At(i, j int) float64 { return m[i][j] }

func TestCheckMatrix(t *testing.T) {
	finite := testMatrix{{1, 2}, {3, 4}}
	if err := CheckMatrix("test", finite, 2, 2); err != nil {
		t.Errorf("CheckMatrix(finite) = %v, want nil", err)
	}

	poisoned := testMatrix{{1, 2}, {math.Inf(1), 4}}
	err := CheckMatrix("test", poisoned, 2, 2)
	if err == nil {
		t.Fatal("CheckMatrix(poisoned) = nil, want error")
	}
	var instErr *NumericalInstabilityError
	if !As(err, &instErr) {
		t.Fatalf("expected *NumericalInstabilityError, got %T", err)
	}
}

func TestSafeExecute(t *testing.T) {
	if err := SafeExecute("ok", func() error { return nil }); err != nil {
		t.Errorf("SafeExecute(ok) = %v, want nil", err)
	}

	err := SafeExecute("boom", func() error { panic("bad design") })
	if err == nil {
		t.Fatal("expected error from panicking function")
	}
	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
}

func TestRecover(t *testing.T) {
	panicky := func() (err error) {
		defer Recover(&err, "panicky")
		panic("boom")
	}

	err := panicky()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	var pe *PanicError
	if !As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if pe.Operation != "panicky" {
		t.Errorf("Operation = %q, want %q", pe.Operation, "panicky")
	}
}
