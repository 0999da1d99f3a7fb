package conversation

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. The transcript is append-only and
// insertion order is the conversation history.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Insurance holds the coverage details collected after booking. Each
// sub-field is set independently and a later turn that repeats the same
// field overwrites the stored value.
type Insurance struct {
	Carrier     string `json:"carrier,omitempty"`
	MemberID    string `json:"member_id,omitempty"`
	GroupNumber string `json:"group_number,omitempty"`
}

// Booking is the record of a successfully reserved slot. Its presence on the
// state is the signal that a booking transaction succeeded.
type Booking struct {
	AppointmentID string `json:"appointment_id"`
	DoctorName    string `json:"doctor_name"`
	Location      string `json:"location"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	SlotType      string `json:"slot_type"`
}

// Confirmations tracks which notification side effects have completed.
type Confirmations struct {
	EmailSent     bool `json:"email_sent"`
	RemindersSent int  `json:"reminders_sent"`
}

// Stage is the pipeline position of a conversation.
type Stage string

const (
	StageAwaitingIdentity Stage = "awaiting_identity"
	StageLookup           Stage = "lookup"
	StageMatching         Stage = "matching"
	StageBookedOrNoSlot   Stage = "booked_or_no_slot"
	StageConfirmed        Stage = "confirmed"
	StageReminded         Stage = "reminded"
)

// State is the single mutable record for one patient interaction. It is
// explicitly passed between pipeline stages and serializable as JSON; there
// is no hidden session global. Identity fields distinguish "unset" (empty
// string) from any set value and are never overwritten once set.
// IsNewPatient is nil until Patient Lookup runs; that is what gates the
// booking pipeline.
type State struct {
	Messages      []Message     `json:"messages"`
	Name          string        `json:"name,omitempty"`
	DOB           string        `json:"dob,omitempty"`
	Doctor        string        `json:"doctor,omitempty"`
	Location      string        `json:"location,omitempty"`
	IsNewPatient  *bool         `json:"is_new_patient,omitempty"`
	Insurance     Insurance     `json:"insurance"`
	Scheduled     *Booking      `json:"scheduled,omitempty"`
	Confirmations Confirmations `json:"confirmations"`
	Stage         Stage         `json:"stage,omitempty"`
}

// NewState returns an empty conversation at the start of the pipeline.
func NewState() *State {
	return &State{Stage: StageAwaitingIdentity}
}

// AddUser appends a user turn to the transcript.
func (s *State) AddUser(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Text: text})
}

// AddAssistant appends a system response to the transcript.
func (s *State) AddAssistant(text string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Text: text})
}

// IdentityComplete reports whether all four required identity fields are set.
func (s *State) IdentityComplete() bool {
	return s.Name != "" && s.DOB != "" && s.Doctor != "" && s.Location != ""
}

// ReadyForPipeline reports whether the booking pipeline should run on this
// turn: identity is complete and Patient Lookup has not happened yet. The
// second condition guards against re-running the pipeline on later turns,
// e.g. when the user supplies insurance details after booking.
func (s *State) ReadyForPipeline() bool {
	return s.IdentityComplete() && s.IsNewPatient == nil
}

// Clone returns a deep copy, so stores can hand out snapshots without
// aliasing the caller's slices.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Messages = append([]Message(nil), s.Messages...)
	if s.IsNewPatient != nil {
		v := *s.IsNewPatient
		cp.IsNewPatient = &v
	}
	if s.Scheduled != nil {
		b := *s.Scheduled
		cp.Scheduled = &b
	}
	return &cp
}
