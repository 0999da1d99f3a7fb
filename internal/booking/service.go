package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/citymed/scheduling-agent/internal/schedule"
	"github.com/citymed/scheduling-agent/pkg/logging"
)

// Sentinel patient id recorded when the patient's name is not yet known.
const placeholderPatientID = "NEW"

// Appointment ids are the first chunk of a UUID; long enough to be unique
// within one clinic's schedule, short enough to read over the phone.
const appointmentIDLen = 8

// Reservation is the outcome of a booking transaction. Persisted is false
// when the schedule store rejected the write because another writer held it;
// the appointment is still reported as confirmed in that case and only the
// persistence caveat is surfaced.
type Reservation struct {
	AppointmentID string
	Slot          schedule.Slot
	Persisted     bool
}

// Service performs the single-slot read-modify-write against the schedule
// store. Best-effort single-writer design: no locking, no optimistic
// versioning, no retry. Concurrent bookings of the same slot are possible
// and the last writer wins.
type Service struct {
	store  schedule.Store
	logger *logging.Logger
}

// NewService creates a booking service.
func NewService(store schedule.Store, logger *logging.Logger) *Service {
	if store == nil {
		panic("booking: schedule store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger}
}

// Reserve transitions the selected slot to unavailable and assigns it a
// fresh appointment id and the patient. The store is re-read before writing
// so the update lands on the latest snapshot rather than the filtered copy
// used for matching; that narrows the staleness window but does not close
// it.
func (s *Service) Reserve(ctx context.Context, slot schedule.Slot, patientName string) (*Reservation, error) {
	appointmentID := uuid.NewString()[:appointmentIDLen]
	patientID := patientName
	if patientID == "" {
		patientID = placeholderPatientID
	}

	full, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: reload schedule: %w", err)
	}

	key := slot.Key()
	for i := range full {
		if full[i].Key() == key {
			full[i].Available = false
			full[i].AppointmentID = appointmentID
			full[i].PatientID = patientID
		}
	}

	res := &Reservation{AppointmentID: appointmentID, Slot: slot, Persisted: true}
	if err := s.store.Save(ctx, full); err != nil {
		if errors.Is(err, schedule.ErrScheduleLocked) {
			s.logger.Warn("schedule store locked, booking not persisted",
				"appointment_id", appointmentID, "doctor_id", slot.DoctorID)
			res.Persisted = false
			return res, nil
		}
		return nil, fmt.Errorf("booking: save schedule: %w", err)
	}

	s.logger.Info("slot reserved",
		"appointment_id", appointmentID,
		"doctor_id", slot.DoctorID,
		"date", slot.Date,
		"start_time", slot.StartTime,
	)
	return res, nil
}
