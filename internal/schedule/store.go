package schedule

import (
	"context"
	"errors"
)

var (
	// ErrScheduleNotFound indicates the backing schedule resource is absent.
	ErrScheduleNotFound = errors.New("schedule: schedule not found")
	// ErrScheduleLocked indicates another writer holds the backing resource.
	// Callers recover from this locally; it is never fatal to a booking.
	ErrScheduleLocked = errors.New("schedule: schedule locked by another writer")
)

// Store is the shared, mutable schedule resource. Load returns a snapshot in
// seed order; Save replaces the schedule wholesale. The store owns no
// locking primitive: concurrent writers are possible and the last writer
// wins. The read-modify-write race between Load and Save is an accepted
// property of the design, not something implementations should paper over
// with multi-row locks.
type Store interface {
	Load(ctx context.Context) ([]Slot, error)
	Save(ctx context.Context, rows []Slot) error
}
