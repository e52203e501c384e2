// Package ids provides the identifier strategy used by every in-memory store:
// a monotonic int64 sequence starting at 1.
package ids

import "sync"

// Sequence hands out monotonically increasing identifiers.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

// NewSequence returns a sequence whose first identifier is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// ResetTo restarts the sequence so that Next returns max(ids)+1, or 1 when ids is empty.
func (s *Sequence) ResetTo(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = 0
	for _, id := range ids {
		if id > s.last {
			s.last = id
		}
	}
}
