package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type captureEmail struct {
	msgs []EmailMessage
}

func (c *captureEmail) Send(ctx context.Context, msg EmailMessage) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

type captureSMS struct {
	to     []string
	bodies []string
}

func (c *captureSMS) SendSMS(ctx context.Context, to, body string) error {
	c.to = append(c.to, to)
	c.bodies = append(c.bodies, body)
	return nil
}

var testAppointment = Appointment{
	AppointmentID: "abc12345",
	DoctorName:    "Dr. Arjun Sharma",
	Location:      "Mumbai Central Clinic",
	Date:          "2025-07-01",
	StartTime:     "09:00",
	EndTime:       "09:30",
}

func TestDeriveEmail(t *testing.T) {
	svc := NewService(nil, nil, "", "clinic.example", nil)

	tests := []struct {
		name string
		want string
	}{
		{"Arjun Sharma", "arjun.sharma@clinic.example"},
		{"arjun   sharma", "arjun.sharma@clinic.example"},
		{"Cher", "cher@clinic.example"},
		{"", "patient@clinic.example"},
	}
	for _, tt := range tests {
		if got := svc.DeriveEmail(tt.name); got != tt.want {
			t.Errorf("DeriveEmail(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSendConfirmation(t *testing.T) {
	email := &captureEmail{}
	svc := NewService(email, nil, "", "clinic.example", nil)

	svc.SendConfirmation(context.Background(), "Arjun Sharma", testAppointment)

	if len(email.msgs) != 1 {
		t.Fatalf("sent %d emails, want 1", len(email.msgs))
	}
	msg := email.msgs[0]
	if msg.To != "arjun.sharma@clinic.example" {
		t.Errorf("to = %q", msg.To)
	}
	if msg.Subject != "Appointment Confirmation & Intake Form" {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{"Hello Arjun Sharma", "2025-07-01", "09:00", "Dr. Arjun Sharma", "Mumbai Central Clinic"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
	if len(msg.Attachments) != 0 {
		t.Errorf("no intake form configured, got attachments %v", msg.Attachments)
	}
}

func TestSendConfirmationAttachesIntakeForm(t *testing.T) {
	formPath := filepath.Join(t.TempDir(), "intake_form.pdf")
	if err := os.WriteFile(formPath, []byte("form"), 0o644); err != nil {
		t.Fatal(err)
	}

	email := &captureEmail{}
	svc := NewService(email, nil, formPath, "clinic.example", nil)
	if !svc.IntakeFormAvailable() {
		t.Fatal("intake form should be reported available")
	}

	svc.SendConfirmation(context.Background(), "Arjun Sharma", testAppointment)
	if len(email.msgs) != 1 || len(email.msgs[0].Attachments) != 1 {
		t.Fatalf("expected one email with one attachment, got %+v", email.msgs)
	}
	if email.msgs[0].Attachments[0] != formPath {
		t.Errorf("attachment = %q", email.msgs[0].Attachments[0])
	}
}

func TestSendConfirmationMissingFormSkipsAttachment(t *testing.T) {
	email := &captureEmail{}
	svc := NewService(email, nil, filepath.Join(t.TempDir(), "missing.pdf"), "clinic.example", nil)

	svc.SendConfirmation(context.Background(), "Arjun Sharma", testAppointment)
	if len(email.msgs) != 1 {
		t.Fatalf("email should still send without the form, got %d", len(email.msgs))
	}
	if len(email.msgs[0].Attachments) != 0 {
		t.Errorf("unexpected attachments %v", email.msgs[0].Attachments)
	}
}

func TestSendConfirmationNilSenderIsNoop(t *testing.T) {
	svc := NewService(nil, nil, "", "", nil)
	// Must not panic.
	svc.SendConfirmation(context.Background(), "Arjun Sharma", testAppointment)
}

func TestSendReminders(t *testing.T) {
	sms := &captureSMS{}
	svc := NewService(nil, sms, "", "", nil)

	n := svc.SendReminders(context.Background(), testAppointment)
	if n != 3 {
		t.Fatalf("sent %d reminders, want 3", n)
	}
	for i, to := range sms.to {
		if to != reminderPhone {
			t.Errorf("reminder %d to %q, want %q", i+1, to, reminderPhone)
		}
	}
	if !strings.Contains(sms.bodies[0], "Dr. Arjun Sharma") || !strings.Contains(sms.bodies[0], "2025-07-01") {
		t.Errorf("first reminder missing appointment details: %q", sms.bodies[0])
	}
	if !strings.Contains(sms.bodies[1], "intake form") {
		t.Errorf("second reminder: %q", sms.bodies[1])
	}
	if !strings.Contains(sms.bodies[2], "Final reminder") {
		t.Errorf("third reminder: %q", sms.bodies[2])
	}
}

func TestSimpleSMSSender(t *testing.T) {
	var gotTo, gotFrom, gotBody string
	sender := NewSimpleSMSSender("+1-555-000-0000", func(ctx context.Context, to, from, body string) error {
		gotTo, gotFrom, gotBody = to, from, body
		return nil
	}, nil)

	if err := sender.SendSMS(context.Background(), reminderPhone, "Reminder 1"); err != nil {
		t.Fatalf("SendSMS: %v", err)
	}
	if gotTo != reminderPhone || gotFrom != "+1-555-000-0000" || gotBody != "Reminder 1" {
		t.Errorf("provider got to=%q from=%q body=%q", gotTo, gotFrom, gotBody)
	}
}

func TestSimpleSMSSenderNoProvider(t *testing.T) {
	sender := NewSimpleSMSSender("", nil, nil)
	if err := sender.SendSMS(context.Background(), reminderPhone, "hi"); err != nil {
		t.Fatalf("missing provider should noop, not error: %v", err)
	}
}

func TestSendRemindersNilSender(t *testing.T) {
	svc := NewService(nil, nil, "", "", nil)
	if n := svc.SendReminders(context.Background(), testAppointment); n != 0 {
		t.Errorf("sent %d reminders without a sender", n)
	}
}
