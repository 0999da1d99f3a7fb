// Command seed provisions the clinic tables and loads them from a JSON
// data file. The API never creates patients or slots itself, so this is
// how a deployment gets its roster and schedule.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/seed testdata/clinic-data.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/citymed/scheduling-agent/internal/patients"
	"github.com/citymed/scheduling-agent/internal/schedule"
	"github.com/citymed/scheduling-agent/pkg/logging"
)

type clinicData struct {
	Patients []patients.Patient `json:"patients"`
	Schedule []schedule.Slot    `json:"schedule"`
}

const ddl = `
CREATE TABLE IF NOT EXISTS patients (
	id         SERIAL PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	dob        TEXT NOT NULL,
	phone      TEXT,
	email      TEXT
);

CREATE TABLE IF NOT EXISTS schedule_slots (
	id             SERIAL PRIMARY KEY,
	doctor_id      TEXT NOT NULL,
	doctor_name    TEXT NOT NULL,
	location       TEXT NOT NULL,
	date           TEXT NOT NULL,
	start_time     TEXT NOT NULL,
	end_time       TEXT NOT NULL,
	slot_type      TEXT NOT NULL,
	available      BOOLEAN NOT NULL DEFAULT TRUE,
	appointment_id TEXT,
	patient_id     TEXT,
	UNIQUE (doctor_id, date, start_time)
);

CREATE TABLE IF NOT EXISTS appointments_export (
	id                SERIAL PRIMARY KEY,
	appointment_id    TEXT NOT NULL,
	patient_name      TEXT NOT NULL,
	dob               TEXT NOT NULL,
	doctor_name       TEXT NOT NULL,
	location          TEXT NOT NULL,
	date              TEXT NOT NULL,
	start_time        TEXT NOT NULL,
	insurance_carrier TEXT,
	member_id         TEXT,
	group_number      TEXT,
	status            TEXT NOT NULL,
	exported_at       TIMESTAMPTZ NOT NULL
);
`

func main() {
	_ = godotenv.Load()
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seed <clinic-data.json>")
		os.Exit(1)
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("failed to read clinic data", "error", err)
		os.Exit(1)
	}
	var data clinicData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Error("failed to parse clinic data", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed(ctx, pool, data); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("clinic data seeded",
		"patients", len(data.Patients),
		"slots", len(data.Schedule),
	)
}

// seed replaces the roster and schedule in one transaction. Re-running the
// tool resets the clinic to the file's contents, including availability.
func seed(ctx context.Context, pool *pgxpool.Pool, data clinicData) error {
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE patients, schedule_slots RESTART IDENTITY`); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		batch := &pgx.Batch{}
		for _, p := range data.Patients {
			batch.Queue(`
				INSERT INTO patients (first_name, last_name, dob, phone, email)
				VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
			`, p.FirstName, p.LastName, p.DOB, p.Phone, p.Email)
		}
		for _, s := range data.Schedule {
			batch.Queue(`
				INSERT INTO schedule_slots
					(doctor_id, doctor_name, location, date, start_time, end_time,
					 slot_type, available, appointment_id, patient_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''))
			`, s.DoctorID, s.DoctorName, s.Location, s.Date, s.StartTime, s.EndTime,
				s.SlotType, s.Available, s.AppointmentID, s.PatientID)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
