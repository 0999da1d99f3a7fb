package conversation

import "strings"

// Insurance details are optional and arrive after booking, usually packed
// into one turn ("Carrier: Star Health; Member: ABC12345; Group: 987654"),
// so values are cut at commas and semicolons. Unlike identity fields these
// are overwrite-on-match: each turn mentioning a sub-field replaces it.

const (
	minMemberIDLen    = 6
	minGroupNumberLen = 4
)

var insuranceKeywords = []string{"carrier", "member", "group"}

// MentionsInsurance reports whether the turn names any insurance sub-field.
func MentionsInsurance(turn string) bool {
	lower := strings.ToLower(turn)
	for _, kw := range insuranceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractInsurance updates the insurance sub-fields named in the turn.
func ExtractInsurance(s *State, turn string) {
	if v, ok := extractKeyedValue(turn, "carrier", ",;"); ok {
		s.Insurance.Carrier = v
	}
	if v, ok := extractKeyedValue(turn, "member", ",;"); ok {
		s.Insurance.MemberID = v
	}
	if v, ok := extractKeyedValue(turn, "group", ",;"); ok {
		s.Insurance.GroupNumber = v
	}
}

// InsuranceResponse returns the assistant reply for an insurance turn. An
// incomplete or too-short value is not an error, just a prompt; the pipeline
// waits for the next turn.
func InsuranceResponse(s *State) string {
	var missing []string
	if s.Insurance.Carrier == "" {
		missing = append(missing, "carrier")
	}
	if s.Insurance.MemberID == "" {
		missing = append(missing, "member_id")
	}
	if s.Insurance.GroupNumber == "" {
		missing = append(missing, "group_number")
	}
	if len(missing) > 0 {
		return "Please provide insurance " + strings.Join(missing, ", ") +
			" (e.g., Carrier: Star Health; Member: ABC12345; Group: 987654)."
	}
	if len(s.Insurance.MemberID) < minMemberIDLen || len(s.Insurance.GroupNumber) < minGroupNumberLen {
		return "Insurance details look incomplete. Please re-check member id and group number."
	}
	return "Insurance information recorded successfully."
}
