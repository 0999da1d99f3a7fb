package patients

import (
	"context"
	"sync"
)

// InMemoryDirectory holds the roster in memory. A directory constructed
// without rows reports ErrDirectoryNotFound until seeded, mirroring a
// missing backing resource.
type InMemoryDirectory struct {
	mu     sync.RWMutex
	rows   []Patient
	seeded bool
}

// NewInMemoryDirectory creates a directory seeded with the given rows.
func NewInMemoryDirectory(rows []Patient) *InMemoryDirectory {
	return &InMemoryDirectory{rows: rows, seeded: rows != nil}
}

// Seed replaces the roster.
func (d *InMemoryDirectory) Seed(rows []Patient) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = rows
	d.seeded = true
}

// LoadPatients returns a snapshot of the roster.
func (d *InMemoryDirectory) LoadPatients(ctx context.Context) ([]Patient, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.seeded {
		return nil, ErrDirectoryNotFound
	}
	out := make([]Patient, len(d.rows))
	copy(out, d.rows)
	return out, nil
}

var _ Directory = (*InMemoryDirectory)(nil)
