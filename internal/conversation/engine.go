package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/citymed/scheduling-agent/internal/booking"
	"github.com/citymed/scheduling-agent/internal/notify"
	"github.com/citymed/scheduling-agent/internal/observability/metrics"
	"github.com/citymed/scheduling-agent/internal/patients"
	"github.com/citymed/scheduling-agent/internal/schedule"
	"github.com/citymed/scheduling-agent/pkg/logging"
)

// Engine processes conversation turns against the clinic's shared
// resources. One turn is one synchronous pass: extraction always, then the
// fixed lookup → match → book → confirm → remind chain exactly once per
// conversation, on the first turn where the identity fields are complete.
type Engine struct {
	directory patients.Directory
	schedule  schedule.Store
	booking   *booking.Service
	export    booking.ExportSink
	notify    *notify.Service
	metrics   *metrics.PipelineMetrics
	logger    *logging.Logger
}

// NewEngine wires the pipeline stages around their collaborators.
func NewEngine(
	directory patients.Directory,
	scheduleStore schedule.Store,
	bookingSvc *booking.Service,
	export booking.ExportSink,
	notifySvc *notify.Service,
	m *metrics.PipelineMetrics,
	logger *logging.Logger,
) *Engine {
	if directory == nil {
		panic("conversation: patient directory required")
	}
	if scheduleStore == nil {
		panic("conversation: schedule store required")
	}
	if bookingSvc == nil {
		panic("conversation: booking service required")
	}
	if export == nil {
		panic("conversation: export sink required")
	}
	if notifySvc == nil {
		panic("conversation: notify service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		directory: directory,
		schedule:  scheduleStore,
		booking:   bookingSvc,
		export:    export,
		notify:    notifySvc,
		metrics:   m,
		logger:    logger,
	}
}

// ProcessTurn runs one conversation turn. The state is mutated in place and
// also returned for convenience. No failure inside a turn crashes the
// caller or drops transcript history: resource and unexpected errors become
// transcript messages and the state stays usable for a retry.
func (e *Engine) ProcessTurn(ctx context.Context, st *State, text string) *State {
	if st == nil {
		st = NewState()
	}
	e.metrics.ObserveTurn()

	st.AddUser(text)
	ExtractIdentity(st, text)

	if prompt := MissingIdentityPrompt(st); prompt != "" {
		st.AddAssistant(prompt)
	} else {
		st.AddAssistant(fmt.Sprintf("Thanks %s. Checking your record...", st.Name))
	}

	if MentionsInsurance(text) {
		ExtractInsurance(st, text)
		st.AddAssistant(InsuranceResponse(st))
	}

	if st.ReadyForPipeline() {
		if err := e.runPipeline(ctx, st); err != nil {
			e.handlePipelineError(st, err)
		}
	}
	return st
}

// handlePipelineError is the outermost turn boundary: missing resources get
// a setup message, everything else a generic apology. Either way the
// transcript and collected fields survive for the next turn.
func (e *Engine) handlePipelineError(st *State, err error) {
	if errors.Is(err, patients.ErrDirectoryNotFound) || errors.Is(err, schedule.ErrScheduleNotFound) {
		e.logger.Warn("pipeline halted, clinic data missing", "error", err)
		e.metrics.ObserveTurnError("missing_resource")
		st.AddAssistant(fmt.Sprintf("Setup incomplete: %v. Please seed the clinic data and try again.", err))
		return
	}
	e.logger.Error("pipeline failed", "error", err)
	e.metrics.ObserveTurnError("internal")
	st.AddAssistant("Sorry, something went wrong. Please try again.")
}

// runPipeline executes the post-identity stages in fixed order. The stages
// are chained unconditionally: when matching finds nothing, the
// notification stages are no-ops and the conversation still reaches the
// terminal stage.
func (e *Engine) runPipeline(ctx context.Context, st *State) error {
	e.metrics.ObservePipelineRun()

	// Patient lookup.
	st.Stage = StageLookup
	roster, err := e.directory.LoadPatients(ctx)
	if err != nil {
		return err
	}
	returning := patients.IsReturning(roster, st.Name, st.DOB)
	isNew := !returning
	st.IsNewPatient = &isNew
	if returning {
		st.AddAssistant("You're a returning patient. Let's find a time.")
	} else {
		st.AddAssistant("Welcome! We'll register you as a new patient.")
	}

	// Slot matching.
	st.Stage = StageMatching
	snapshot, err := e.schedule.Load(ctx)
	if err != nil {
		return err
	}
	slot, found := schedule.Match(snapshot, st.Doctor, st.Location, st.IsNewPatient)

	// Booking transaction.
	st.Stage = StageBookedOrNoSlot
	if !found {
		st.AddAssistant("Sorry, no available slots match your criteria. Try another doctor/location or a different day.")
		e.metrics.ObserveBooking(metrics.OutcomeNoAvailability)
	} else {
		res, err := e.booking.Reserve(ctx, slot, st.Name)
		if err != nil {
			return err
		}
		if !res.Persisted {
			st.AddAssistant("Note: the schedule is currently in use, but your appointment is confirmed.")
			e.metrics.ObserveBooking(metrics.OutcomeNotPersisted)
		} else {
			e.metrics.ObserveBooking(metrics.OutcomeBooked)
		}
		st.Scheduled = &Booking{
			AppointmentID: res.AppointmentID,
			DoctorName:    slot.DoctorName,
			Location:      slot.Location,
			Date:          slot.Date,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			SlotType:      slot.SlotType,
		}
		st.AddAssistant(fmt.Sprintf("Booked %s at %s on %s at %s.",
			slot.DoctorName, slot.Location, slot.Date, slot.StartTime))
	}

	// Confirmation.
	if st.Scheduled != nil {
		if err := e.export.Append(ctx, exportRecord(st)); err != nil {
			return err
		}
		e.notify.SendConfirmation(ctx, st.Name, notifyAppointment(st.Scheduled))
		st.Confirmations.EmailSent = true
		e.metrics.ObserveNotification("confirmation_email")
		st.AddAssistant("Confirmation email sent with intake form attachment.")
	}
	st.Stage = StageConfirmed

	// Reminders.
	if st.Scheduled != nil {
		st.Confirmations.RemindersSent = e.notify.SendReminders(ctx, notifyAppointment(st.Scheduled))
		e.metrics.ObserveNotification("reminder_sms")
		st.AddAssistant("Three reminders have been scheduled and sent.")
	}
	st.Stage = StageReminded
	return nil
}

func exportRecord(st *State) booking.ExportRecord {
	return booking.ExportRecord{
		AppointmentID:    st.Scheduled.AppointmentID,
		PatientName:      st.Name,
		DOB:              st.DOB,
		DoctorName:       st.Scheduled.DoctorName,
		Location:         st.Scheduled.Location,
		Date:             st.Scheduled.Date,
		StartTime:        st.Scheduled.StartTime,
		InsuranceCarrier: st.Insurance.Carrier,
		MemberID:         st.Insurance.MemberID,
		GroupNumber:      st.Insurance.GroupNumber,
		Status:           "confirmed",
	}
}

func notifyAppointment(b *Booking) notify.Appointment {
	return notify.Appointment{
		AppointmentID: b.AppointmentID,
		DoctorName:    b.DoctorName,
		Location:      b.Location,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
	}
}
