package schedule

import (
	"context"
	"sync"
)

// InMemoryStore keeps the schedule in memory. It reproduces the failure
// modes of the real resource: unseeded reads report ErrScheduleNotFound and
// a store marked locked rejects writes with ErrScheduleLocked while still
// serving reads, like a spreadsheet held open by another process.
type InMemoryStore struct {
	mu     sync.Mutex
	rows   []Slot
	seeded bool
	locked bool
}

// NewInMemoryStore creates a store seeded with the given rows.
func NewInMemoryStore(rows []Slot) *InMemoryStore {
	return &InMemoryStore{rows: copyRows(rows), seeded: rows != nil}
}

// Seed replaces the schedule contents.
func (s *InMemoryStore) Seed(rows []Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = copyRows(rows)
	s.seeded = true
}

// SetLocked toggles write rejection.
func (s *InMemoryStore) SetLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

// Load returns a snapshot of the schedule.
func (s *InMemoryStore) Load(ctx context.Context) ([]Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seeded {
		return nil, ErrScheduleNotFound
	}
	return copyRows(s.rows), nil
}

// Save replaces the schedule wholesale. Last writer wins.
func (s *InMemoryStore) Save(ctx context.Context, rows []Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrScheduleLocked
	}
	s.rows = copyRows(rows)
	s.seeded = true
	return nil
}

func copyRows(rows []Slot) []Slot {
	if rows == nil {
		return nil
	}
	out := make([]Slot, len(rows))
	copy(out, rows)
	return out
}

var _ Store = (*InMemoryStore)(nil)
