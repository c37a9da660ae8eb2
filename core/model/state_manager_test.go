package model

import (
	"bytes"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()

	if s.IsFitted() {
		t.Error("new StateManager should not be fitted")
	}

	s.SetDataShape(10, 3)
	s.SetFitted()

	if !s.IsFitted() {
		t.Error("expected fitted after SetFitted")
	}
	rows, cols := s.DataShape()
	if rows != 10 || cols != 3 {
		t.Errorf("DataShape() = (%d, %d), want (10, 3)", rows, cols)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("expected unfitted after Reset")
	}
	rows, cols = s.DataShape()
	if rows != 0 || cols != 0 {
		t.Errorf("DataShape() after Reset = (%d, %d), want (0, 0)", rows, cols)
	}
}

func TestStateManagerClone(t *testing.T) {
	s := NewStateManager()
	s.SetDataShape(5, 2)
	s.SetFitted()

	clone := s.Clone()
	s.Reset()

	if !clone.IsFitted() {
		t.Error("clone should retain fitted state after original reset")
	}
	rows, cols := clone.DataShape()
	if rows != 5 || cols != 2 {
		t.Errorf("clone DataShape() = (%d, %d), want (5, 2)", rows, cols)
	}
}

type snapshot struct {
	Width  int
	FitMu  []float64
	Fitted bool
}

func TestGobRoundTrip(t *testing.T) {
	in := snapshot{Width: 3, FitMu: []float64{1.5, -0.5, 2.0}, Fitted: true}

	var buf bytes.Buffer
	if err := SaveModelToWriter(&in, &buf); err != nil {
		t.Fatalf("SaveModelToWriter: %v", err)
	}

	var out snapshot
	if err := LoadModelFromReader(&out, &buf); err != nil {
		t.Fatalf("LoadModelFromReader: %v", err)
	}

	if out.Width != in.Width || out.Fitted != in.Fitted {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
	for i := range in.FitMu {
		if out.FitMu[i] != in.FitMu[i] {
			t.Errorf("FitMu[%d] = %v, want %v", i, out.FitMu[i], in.FitMu[i])
		}
	}
}
