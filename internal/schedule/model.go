package schedule

// Slot types. New-patient slots are the longer first-visit slots; returning
// slots are standard follow-ups.
const (
	SlotTypeNew       = "new"
	SlotTypeReturning = "returning"
)

// Slot is one bookable unit of a doctor's calendar. Rows are generated once
// by an external seeding process; this service only flips availability and
// assigns the appointment, never creates or deletes rows.
type Slot struct {
	DoctorID      string `json:"doctor_id"`
	DoctorName    string `json:"doctor_name"`
	Location      string `json:"location"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM, 24-hour
	EndTime       string `json:"end_time"`
	SlotType      string `json:"slot_type"`
	Available     bool   `json:"available"`
	AppointmentID string `json:"appointment_id,omitempty"`
	PatientID     string `json:"patient_id,omitempty"`
}

// Key identifies a slot row in the store.
type Key struct {
	DoctorID  string
	Date      string
	StartTime string
}

// Key returns the row identity of the slot.
func (s Slot) Key() Key {
	return Key{DoctorID: s.DoctorID, Date: s.Date, StartTime: s.StartTime}
}
