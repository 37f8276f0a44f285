// Package sequence owns the receipt-number counter: monotonically
// increasing integers, persisted before a number is ever burned into a
// document.
package sequence

import (
	"sync"

	"go.uber.org/zap"
)

// Allocation is the result of a counter increment. Persisted is false when
// the new value could not be written back; the number is still usable but
// may be reissued after a restart.
type Allocation struct {
	Number    int
	Persisted bool
}

// Sequencer hands out receipt numbers. All allocations are serialized
// through a single mutex so concurrent requests cannot observe the same
// counter value.
type Sequencer struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
}

// NewSequencer creates a Sequencer over the given store.
func NewSequencer(store Store, logger *zap.Logger) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{store: store, logger: logger}
}

// Allocate loads the counter, increments it by one, persists it and
// returns the new value. Store failures are not fatal: the increment still
// returns a best-effort number, flagged as not persisted.
func (s *Sequencer) Allocate() Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load()
	if err != nil {
		s.logger.Warn("loading receipt counter", zap.Error(err))
	}
	c.LastReceiptNumber++

	if err := s.store.Save(c); err != nil {
		s.logger.Warn("persisting receipt counter", zap.Int("number", c.LastReceiptNumber), zap.Error(err))
		return Allocation{Number: c.LastReceiptNumber, Persisted: false}
	}
	return Allocation{Number: c.LastReceiptNumber, Persisted: true}
}
