package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ExportRecord is one row of the append-only confirmed-appointments log.
type ExportRecord struct {
	AppointmentID    string `json:"appointment_id"`
	PatientName      string `json:"patient_name"`
	DOB              string `json:"dob"`
	DoctorName       string `json:"doctor_name"`
	Location         string `json:"location"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	InsuranceCarrier string `json:"insurance_carrier"`
	MemberID         string `json:"member_id"`
	GroupNumber      string `json:"group_number"`
	Status           string `json:"status"`
}

// ExportSink appends confirmed bookings to the clinic's export log. Unlike
// notification delivery, append failures propagate to the caller.
type ExportSink interface {
	Append(ctx context.Context, rec ExportRecord) error
}

// InMemoryExportSink collects records in memory.
type InMemoryExportSink struct {
	mu      sync.Mutex
	records []ExportRecord
}

// NewInMemoryExportSink creates an empty sink.
func NewInMemoryExportSink() *InMemoryExportSink {
	return &InMemoryExportSink{}
}

// Append adds a record to the log.
func (s *InMemoryExportSink) Append(ctx context.Context, rec ExportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a snapshot of everything appended so far.
func (s *InMemoryExportSink) Records() []ExportRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ExportRecord, len(s.records))
	copy(out, s.records)
	return out
}

// PostgresExportSink appends records to the appointments_export table.
type PostgresExportSink struct {
	pool *pgxpool.Pool
}

// NewPostgresExportSink initializes a sink backed by pgxpool.
func NewPostgresExportSink(pool *pgxpool.Pool) *PostgresExportSink {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &PostgresExportSink{pool: pool}
}

// Append inserts one export row.
func (s *PostgresExportSink) Append(ctx context.Context, rec ExportRecord) error {
	query := `
		INSERT INTO appointments_export
			(appointment_id, patient_name, dob, doctor_name, location, date,
			 start_time, insurance_carrier, member_id, group_number, status, exported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := s.pool.Exec(ctx, query,
		rec.AppointmentID,
		rec.PatientName,
		rec.DOB,
		rec.DoctorName,
		rec.Location,
		rec.Date,
		rec.StartTime,
		rec.InsuranceCarrier,
		rec.MemberID,
		rec.GroupNumber,
		rec.Status,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("booking: export insert failed: %w", err)
	}
	return nil
}

var (
	_ ExportSink = (*InMemoryExportSink)(nil)
	_ ExportSink = (*PostgresExportSink)(nil)
)
