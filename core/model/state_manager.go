// Package model provides state management and shared interfaces for
// generator models.
package model

import (
	"fmt"
	"sync"
)

// StateManager tracks whether a generator has been fitted, and the shape of
// the dataset it was fitted to. "Has this been fit" is a single transition:
// a generator starts unfitted, and Fit moves it to fitted only after the
// whole solve succeeds.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Shape of the last fitted dataset - Public for gob encoding
	DataRows int
	DataCols int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset resets the fitted state and forgets the data shape.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.DataRows = 0
	s.DataCols = 0
}

// SetDataShape records the (rows, cols) shape of the fitted dataset.
func (s *StateManager) SetDataShape(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DataRows = rows
	s.DataCols = cols
}

// DataShape returns the (rows, cols) shape of the fitted dataset.
func (s *StateManager) DataShape() (rows, cols int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DataRows, s.DataCols
}

// Clone returns an independent copy of the state.
func (s *StateManager) Clone() *StateManager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &StateManager{
		Fitted:   s.Fitted,
		DataRows: s.DataRows,
		DataCols: s.DataCols,
	}
}

// String implements fmt.Stringer for debugging.
func (s *StateManager) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.Fitted {
		return "StateManager{unfitted}"
	}
	return fmt.Sprintf("StateManager{fitted, shape=(%d, %d)}", s.DataRows, s.DataCols)
}
