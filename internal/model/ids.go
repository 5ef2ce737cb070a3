package model

import (
	"sync"
	"time"
)

// IDSource hands out task ids derived from the wall clock in milliseconds,
// bumped past the last issued or observed id so two tasks created in the
// same millisecond never share an id.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceWithClock is used by tests that need deterministic ids.
func NewIDSourceWithClock(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe raises the floor so an id that already exists is never reissued.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
