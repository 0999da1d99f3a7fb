package conversation

import (
	"strings"
	"testing"
)

func TestMentionsInsurance(t *testing.T) {
	tests := []struct {
		turn string
		want bool
	}{
		{"Carrier: Star Health", true},
		{"my member id is ABC", true},
		{"Group: 987654", true},
		{"Name: Jane Doe", false},
		{"book me with Dr. Mehta", false},
	}
	for _, tt := range tests {
		if got := MentionsInsurance(tt.turn); got != tt.want {
			t.Errorf("MentionsInsurance(%q) = %v, want %v", tt.turn, got, tt.want)
		}
	}
}

func TestExtractInsuranceSemicolonPacked(t *testing.T) {
	st := NewState()
	ExtractInsurance(st, "Carrier: Star Health; Member: ABC12345; Group: 987654")

	if st.Insurance.Carrier != "Star Health" {
		t.Errorf("carrier = %q", st.Insurance.Carrier)
	}
	if st.Insurance.MemberID != "ABC12345" {
		t.Errorf("member = %q", st.Insurance.MemberID)
	}
	if st.Insurance.GroupNumber != "987654" {
		t.Errorf("group = %q", st.Insurance.GroupNumber)
	}
}

func TestExtractInsuranceNonASCIITurns(t *testing.T) {
	st := NewState()
	ExtractInsurance(st, "İ Carrier: Ştar Health; Member: ABC12345; Group: 987654")

	if st.Insurance.Carrier != "Ştar Health" {
		t.Errorf("carrier = %q", st.Insurance.Carrier)
	}
	if st.Insurance.MemberID != "ABC12345" {
		t.Errorf("member = %q", st.Insurance.MemberID)
	}
	if st.Insurance.GroupNumber != "987654" {
		t.Errorf("group = %q", st.Insurance.GroupNumber)
	}

	st = NewState()
	ExtractInsurance(st, "ȺȺȺȺȺcarrier:x")
	if st.Insurance.Carrier != "x" {
		t.Errorf("carrier after width-growing prefix = %q", st.Insurance.Carrier)
	}
}

func TestExtractInsuranceOverwrites(t *testing.T) {
	st := NewState()
	ExtractInsurance(st, "Carrier: Star Health")
	ExtractInsurance(st, "Carrier: United India")

	if st.Insurance.Carrier != "United India" {
		t.Errorf("carrier = %q, want last value", st.Insurance.Carrier)
	}
}

func TestExtractInsurancePartialLeavesOthers(t *testing.T) {
	st := NewState()
	st.Insurance = Insurance{Carrier: "Star Health", MemberID: "ABC12345", GroupNumber: "987654"}
	ExtractInsurance(st, "Member: XYZ99999")

	if st.Insurance.MemberID != "XYZ99999" {
		t.Errorf("member = %q", st.Insurance.MemberID)
	}
	if st.Insurance.Carrier != "Star Health" || st.Insurance.GroupNumber != "987654" {
		t.Errorf("unrelated fields changed: %+v", st.Insurance)
	}
}

func TestInsuranceResponse(t *testing.T) {
	tests := []struct {
		name string
		ins  Insurance
		want string
	}{
		{"all missing", Insurance{}, "Please provide insurance carrier, member_id, group_number"},
		{"member missing", Insurance{Carrier: "Star Health", GroupNumber: "987654"}, "Please provide insurance member_id"},
		{"member too short", Insurance{Carrier: "Star Health", MemberID: "AB1", GroupNumber: "987654"}, "look incomplete"},
		{"group too short", Insurance{Carrier: "Star Health", MemberID: "ABC12345", GroupNumber: "98"}, "look incomplete"},
		{"complete", Insurance{Carrier: "Star Health", MemberID: "ABC123", GroupNumber: "9876"}, "recorded successfully"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			st.Insurance = tt.ins
			if got := InsuranceResponse(st); !strings.Contains(got, tt.want) {
				t.Errorf("InsuranceResponse(%+v) = %q, want substring %q", tt.ins, got, tt.want)
			}
		})
	}
}
