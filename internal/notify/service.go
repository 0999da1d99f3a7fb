package notify

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/citymed/scheduling-agent/pkg/logging"
)

// Number used for reminder texts until real patient phone collection exists.
const reminderPhone = "+1-000-000-0000"

// Appointment carries the booked-slot details the notification templates
// need. Keeping it a plain value avoids coupling this package to the
// conversation state record.
type Appointment struct {
	AppointmentID string
	DoctorName    string
	Location      string
	Date          string
	StartTime     string
	EndTime       string
}

// Service fires the confirmation and reminder side effects for a booked
// appointment. Delivery is fire-and-forget: send failures are logged and
// never block or fail the booking pipeline.
type Service struct {
	email          EmailSender
	sms            SMSSender
	intakeFormPath string
	emailDomain    string
	logger         *logging.Logger
}

// NewService creates a notification service. intakeFormPath may be empty or
// point at a file that does not exist yet; the form is attached only when
// present.
func NewService(email EmailSender, sms SMSSender, intakeFormPath, emailDomain string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if emailDomain == "" {
		emailDomain = "clinic.example"
	}
	return &Service{
		email:          email,
		sms:            sms,
		intakeFormPath: intakeFormPath,
		emailDomain:    emailDomain,
		logger:         logger,
	}
}

// DeriveEmail builds the deterministic contact address for a patient name:
// lowercased, spaces collapsed to dots, at the clinic's patient domain.
func (s *Service) DeriveEmail(patientName string) string {
	if patientName == "" {
		patientName = "Patient"
	}
	local := strings.ToLower(strings.Join(strings.Fields(patientName), "."))
	return local + "@" + s.emailDomain
}

// SendConfirmation emails the appointment confirmation, attaching the intake
// form when the resource exists.
func (s *Service) SendConfirmation(ctx context.Context, patientName string, appt Appointment) {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping confirmation")
		return
	}

	name := patientName
	if name == "" {
		name = "Patient"
	}
	body := fmt.Sprintf("Hello %s,\n\n"+
		"Your appointment is confirmed for %s at %s with %s (%s).\n"+
		"Please complete the attached intake form before your visit.\n\nThank you.",
		name, appt.Date, appt.StartTime, appt.DoctorName, appt.Location)

	msg := EmailMessage{
		To:      s.DeriveEmail(patientName),
		ToName:  name,
		Subject: "Appointment Confirmation & Intake Form",
		Body:    body,
	}
	if s.intakeFormExists() {
		msg.Attachments = []string{s.intakeFormPath}
	}

	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("confirmation email failed", "error", err, "appointment_id", appt.AppointmentID)
		return
	}
	s.logger.Info("confirmation email sent", "to", msg.To, "appointment_id", appt.AppointmentID)
}

// SendReminders sends the fixed three-message reminder sequence and returns
// how many were fired.
func (s *Service) SendReminders(ctx context.Context, appt Appointment) int {
	if s.sms == nil {
		s.logger.Debug("notify: SMS sender not configured, skipping reminders")
		return 0
	}

	reminders := []string{
		fmt.Sprintf("Reminder 1: Your appointment with %s is on %s at %s", appt.DoctorName, appt.Date, appt.StartTime),
		"Reminder 2: Please confirm attendance and complete the intake form.",
		"Reminder 3: Final reminder. Reply CANCEL to reschedule.",
	}
	for _, body := range reminders {
		if err := s.sms.SendSMS(ctx, reminderPhone, body); err != nil {
			s.logger.Error("reminder SMS failed", "error", err, "appointment_id", appt.AppointmentID)
		}
	}
	s.logger.Info("reminder sequence sent", "count", len(reminders), "appointment_id", appt.AppointmentID)
	return len(reminders)
}

// IntakeFormAvailable reports whether the configured intake form resource
// exists on disk.
func (s *Service) IntakeFormAvailable() bool {
	return s.intakeFormExists()
}

func (s *Service) intakeFormExists() bool {
	if s.intakeFormPath == "" {
		return false
	}
	info, err := os.Stat(s.intakeFormPath)
	return err == nil && !info.IsDir()
}
