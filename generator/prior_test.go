package generator

import (
	"math"
	"testing"

	"github.com/goml-tools/lingen/pkg/errors"
)

func isPosInf(v float64) bool { return math.IsInf(v, 1) }

func TestParsePrior(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		width   int
		fill    float64
		want    []float64
		wantErr bool
	}{
		{
			name:   "empty uses fill",
			values: nil,
			width:  3,
			fill:   0,
			want:   []float64{0, 0, 0},
		},
		{
			name:   "scalar broadcast",
			values: []float64{2.5},
			width:  3,
			fill:   0,
			want:   []float64{2.5, 2.5, 2.5},
		},
		{
			name:   "full vector used as-is",
			values: []float64{1, 2, 3},
			width:  3,
			fill:   0,
			want:   []float64{1, 2, 3},
		},
		{
			name:    "wrong length",
			values:  []float64{1, 2},
			width:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrior("prior_mu", tt.values, tt.width, tt.fill)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePrior() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCannotParsePrior) {
					t.Errorf("expected ErrCannotParsePrior, got %v", err)
				}
				return
			}
			for i, w := range tt.want {
				if got.AtVec(i) != w {
					t.Errorf("parsePrior()[%d] = %v, want %v", i, got.AtVec(i), w)
				}
			}
		})
	}
}

func TestParsePriorSigma(t *testing.T) {
	t.Run("default is uninformative", func(t *testing.T) {
		got, err := parsePriorSigma("prior_sigma", nil, 4)
		if err != nil {
			t.Fatalf("parsePriorSigma: %v", err)
		}
		for i := 0; i < 4; i++ {
			if !isPosInf(got.AtVec(i)) {
				t.Errorf("entry %d = %v, want +Inf", i, got.AtVec(i))
			}
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		if _, err := parsePriorSigma("prior_sigma", []float64{-1}, 2); err == nil {
			t.Error("expected validation error for negative sigma")
		}
	})

	t.Run("NaN rejected", func(t *testing.T) {
		if _, err := parsePriorSigma("prior_sigma", []float64{math.NaN()}, 1); err == nil {
			t.Error("expected validation error for NaN sigma")
		}
	})

	t.Run("zero accepted", func(t *testing.T) {
		// A zero sigma is an extreme but legitimate regularization;
		// misuse surfaces at fit time, not here.
		got, err := parsePriorSigma("prior_sigma", []float64{0}, 2)
		if err != nil {
			t.Fatalf("parsePriorSigma: %v", err)
		}
		if got.AtVec(0) != 0 || got.AtVec(1) != 0 {
			t.Errorf("expected broadcast zeros, got [%v %v]", got.AtVec(0), got.AtVec(1))
		}
	})
}
