package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the schedule in the relational database. Save updates
// the mutable columns of each row by its identity; it deliberately does not
// take row locks or compare versions, preserving the last-writer-wins
// contract of Store. A lock held by a concurrent transaction surfaces as
// ErrScheduleLocked so the booking path can degrade instead of failing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("schedule: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

// Load fetches the full schedule in seed order.
func (s *PostgresStore) Load(ctx context.Context) ([]Slot, error) {
	query := `
		SELECT doctor_id, doctor_name, location, date, start_time, end_time,
		       slot_type, available, COALESCE(appointment_id, ''), COALESCE(patient_id, '')
		FROM schedule_slots
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("schedule: select failed: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(
			&slot.DoctorID,
			&slot.DoctorName,
			&slot.Location,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.SlotType,
			&slot.Available,
			&slot.AppointmentID,
			&slot.PatientID,
		); err != nil {
			return nil, fmt.Errorf("schedule: scan failed: %w", err)
		}
		out = append(out, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule: iterate failed: %w", err)
	}
	return out, nil
}

// Save writes the mutable columns of every row back by identity.
func (s *PostgresStore) Save(ctx context.Context, slots []Slot) error {
	// NOWAIT makes "another writer holds the table" visible immediately
	// instead of blocking the turn.
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE schedule_slots IN ROW EXCLUSIVE MODE NOWAIT`); err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, slot := range slots {
			batch.Queue(`
				UPDATE schedule_slots
				SET available = $1, appointment_id = NULLIF($2, ''), patient_id = NULLIF($3, '')
				WHERE doctor_id = $4 AND date = $5 AND start_time = $6
			`, slot.Available, slot.AppointmentID, slot.PatientID, slot.DoctorID, slot.Date, slot.StartTime)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if isLockNotAvailable(err) {
			return ErrScheduleLocked
		}
		if isUndefinedTable(err) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("schedule: save failed: %w", err)
	}
	return nil
}

// isUndefinedTable detects the "relation does not exist" postgres error.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// isLockNotAvailable detects the NOWAIT lock failure.
func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03"
}

var _ Store = (*PostgresStore)(nil)
