package schedule

import "testing"

func boolPtr(v bool) *bool { return &v }

func sampleRows() []Slot {
	return []Slot{
		{DoctorID: "D1", DoctorName: "Dr. Arjun Sharma", Location: "Mumbai Central Clinic", Date: "2025-07-02", StartTime: "10:00", EndTime: "10:30", SlotType: SlotTypeNew, Available: true},
		{DoctorID: "D1", DoctorName: "Dr. Arjun Sharma", Location: "Mumbai Central Clinic", Date: "2025-07-01", StartTime: "09:00", EndTime: "09:30", SlotType: SlotTypeNew, Available: true},
		{DoctorID: "D1", DoctorName: "Dr. Arjun Sharma", Location: "Andheri West Clinic", Date: "2025-07-01", StartTime: "08:00", EndTime: "08:30", SlotType: SlotTypeReturning, Available: true},
		{DoctorID: "D2", DoctorName: "Dr. Priya Mehta", Location: "Mumbai Central Clinic", Date: "2025-07-01", StartTime: "08:30", EndTime: "09:00", SlotType: SlotTypeNew, Available: true},
	}
}

func TestMatchEarliestByDateThenTime(t *testing.T) {
	slot, ok := Match(sampleRows(), "Dr. Arjun Sharma", "Mumbai Central", boolPtr(true))
	if !ok {
		t.Fatal("expected a match")
	}
	if slot.Date != "2025-07-01" || slot.StartTime != "09:00" {
		t.Errorf("got %s %s, want earliest 2025-07-01 09:00", slot.Date, slot.StartTime)
	}
}

func TestMatchDoctorHonorificStripped(t *testing.T) {
	for _, input := range []string{"Dr. Arjun Sharma", "Dr Arjun Sharma", "Arjun Sharma", "arjun sharma"} {
		if _, ok := Match(sampleRows(), input, "Mumbai Central", boolPtr(true)); !ok {
			t.Errorf("doctor input %q did not match", input)
		}
	}
}

func TestMatchDoctorSurnameFallback(t *testing.T) {
	// Full-name contains fails ("Arjun Kumar Sharma" is not a substring of
	// any row), so the surname retry kicks in.
	slot, ok := Match(sampleRows(), "Arjun Kumar Sharma", "Mumbai Central", boolPtr(true))
	if !ok {
		t.Fatal("expected surname fallback to match")
	}
	if slot.DoctorID != "D1" {
		t.Errorf("matched doctor %s, want D1", slot.DoctorID)
	}
}

func TestMatchUnknownDoctorNoAvailability(t *testing.T) {
	if _, ok := Match(sampleRows(), "Nobody", "Mumbai Central", boolPtr(true)); ok {
		t.Error("unknown doctor should yield no availability, not an error")
	}
}

func TestMatchLocationShortTokensSkipped(t *testing.T) {
	// "New 123" has no token of usable length; the set stays unfiltered and
	// the earliest eligible slot anywhere wins.
	slot, ok := Match(sampleRows(), "Arjun Sharma", "New 123", boolPtr(true))
	if !ok {
		t.Fatal("expected a match with unfiltered location")
	}
	if slot.Date != "2025-07-01" || slot.StartTime != "09:00" {
		t.Errorf("got %s %s", slot.Date, slot.StartTime)
	}
}

func TestMatchLocationFirstTokenWins(t *testing.T) {
	// "Andheri" matches before "Central" would be tried.
	slot, ok := Match(sampleRows(), "Arjun Sharma", "Andheri Central", boolPtr(false))
	if !ok {
		t.Fatal("expected a match")
	}
	if slot.Location != "Andheri West Clinic" {
		t.Errorf("matched location %s, want Andheri West Clinic", slot.Location)
	}
}

func TestMatchSlotTypeEligibility(t *testing.T) {
	rows := sampleRows()

	slot, ok := Match(rows, "Arjun Sharma", "", boolPtr(false))
	if !ok || slot.SlotType != SlotTypeReturning {
		t.Errorf("returning patient got %+v, ok=%v", slot, ok)
	}

	slot, ok = Match(rows, "Arjun Sharma", "", boolPtr(true))
	if !ok || slot.SlotType != SlotTypeNew {
		t.Errorf("new patient got %+v, ok=%v", slot, ok)
	}
}

func TestMatchUnavailableRowsExcluded(t *testing.T) {
	rows := sampleRows()
	for i := range rows {
		rows[i].Available = false
	}
	if _, ok := Match(rows, "Arjun Sharma", "Mumbai Central", boolPtr(true)); ok {
		t.Error("booked-out schedule should yield no availability")
	}
}

func TestMatchUnknownPatientTypeSkipsEligibility(t *testing.T) {
	rows := []Slot{
		{DoctorName: "Dr. Arjun Sharma", Location: "Mumbai Central", Date: "2025-07-01", StartTime: "09:00", SlotType: SlotTypeReturning, Available: false},
	}
	if _, ok := Match(rows, "Arjun Sharma", "", nil); !ok {
		t.Error("nil patient type should skip the availability filter")
	}
}

func TestMatchStableTieKeepsRowOrder(t *testing.T) {
	rows := []Slot{
		{DoctorID: "first", DoctorName: "Dr. A", Location: "X", Date: "2025-07-01", StartTime: "09:00", SlotType: SlotTypeNew, Available: true},
		{DoctorID: "second", DoctorName: "Dr. A", Location: "X", Date: "2025-07-01", StartTime: "09:00", SlotType: SlotTypeNew, Available: true},
	}
	slot, ok := Match(rows, "", "", boolPtr(true))
	if !ok || slot.DoctorID != "first" {
		t.Errorf("tie broke row order: got %s", slot.DoctorID)
	}
}

func TestMatchDoesNotReselectBookedSlot(t *testing.T) {
	rows := sampleRows()
	first, ok := Match(rows, "Arjun Sharma", "Mumbai Central", boolPtr(true))
	if !ok {
		t.Fatal("expected a first match")
	}
	for i := range rows {
		if rows[i].Key() == first.Key() {
			rows[i].Available = false
		}
	}
	second, ok := Match(rows, "Arjun Sharma", "Mumbai Central", boolPtr(true))
	if !ok {
		t.Fatal("expected a second match")
	}
	if second.Key() == first.Key() {
		t.Errorf("booked slot selected again: %+v", second)
	}
}

func TestMatchInputRowsNotMutated(t *testing.T) {
	rows := sampleRows()
	want := rows[0]
	Match(rows, "Arjun Sharma", "Mumbai Central", boolPtr(true))
	if rows[0] != want {
		t.Errorf("caller's rows mutated: %+v", rows[0])
	}
}
