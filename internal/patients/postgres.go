package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDirectory reads the roster from the relational database.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory initializes a directory backed by pgxpool.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	if pool == nil {
		panic("patients: pgx pool required")
	}
	return &PostgresDirectory{pool: pool}
}

// LoadPatients fetches every roster row. An empty table is a valid roster;
// only a missing table maps to ErrDirectoryNotFound.
func (d *PostgresDirectory) LoadPatients(ctx context.Context) ([]Patient, error) {
	query := `
		SELECT first_name, last_name, dob, COALESCE(phone, ''), COALESCE(email, '')
		FROM patients
		ORDER BY id
	`
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, ErrDirectoryNotFound
		}
		return nil, fmt.Errorf("patients: select failed: %w", err)
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.FirstName, &p.LastName, &p.DOB, &p.Phone, &p.Email); err != nil {
			return nil, fmt.Errorf("patients: scan failed: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patients: iterate failed: %w", err)
	}
	return out, nil
}

// isUndefinedTable detects the "relation does not exist" postgres error.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

var _ Directory = (*PostgresDirectory)(nil)
