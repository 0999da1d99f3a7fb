package patients

import (
	"context"
	"errors"
)

// ErrDirectoryNotFound indicates the backing patient roster has not been
// provisioned yet.
var ErrDirectoryNotFound = errors.New("patients: directory not found")

// Patient is one row of the clinic's patient directory.
type Patient struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Directory provides read-only access to the patient roster. The booking
// pipeline never writes to it.
type Directory interface {
	LoadPatients(ctx context.Context) ([]Patient, error)
}
