package schedule

import (
	"sort"
	"strings"
)

// Minimum length for a location token to count in matching; shorter tokens
// are stop words like "new" or "the".
const minLocationTokenLen = 4

// Match selects the single best slot for the given preferences, or reports
// no availability. Filters apply in decreasing selectivity, mirroring the
// patient's stated priority: who, then where, then eligibility.
//
//  1. Doctor: strip the "Dr"/"Dr." honorific, lowercase, keep rows whose
//     doctor name contains the cleaned string; if none match, retry with the
//     surname (last token) only. Zero rows after the fallback just means an
//     empty candidate set; "unknown doctor" and "no slots for this doctor"
//     are deliberately indistinguishable.
//  2. Location: try each whitespace token longer than three characters, in
//     order, as a case-insensitive substring of the row location; the first
//     token matching any remaining row filters the set and stops the scan.
//     No matching token leaves the set unfiltered.
//  3. Eligibility: when the patient type is known, keep only available rows
//     of the required slot type ("new" for new patients, else "returning").
//
// The earliest (date, start_time) slot wins; ties keep original row order.
func Match(rows []Slot, doctor, location string, isNewPatient *bool) (Slot, bool) {
	candidates := make([]Slot, len(rows))
	copy(candidates, rows)

	if doctor != "" {
		candidates = filterDoctor(candidates, doctor)
	}
	if location != "" {
		candidates = filterLocation(candidates, location)
	}
	if isNewPatient != nil {
		required := SlotTypeReturning
		if *isNewPatient {
			required = SlotTypeNew
		}
		kept := candidates[:0]
		for _, row := range candidates {
			if row.SlotType == required && row.Available {
				kept = append(kept, row)
			}
		}
		candidates = kept
	}

	if len(candidates) == 0 {
		return Slot{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Date != candidates[j].Date {
			return candidates[i].Date < candidates[j].Date
		}
		return candidates[i].StartTime < candidates[j].StartTime
	})
	return candidates[0], true
}

func filterDoctor(rows []Slot, doctor string) []Slot {
	cleaned := strings.TrimSpace(strings.NewReplacer("Dr.", "", "Dr", "").Replace(doctor))
	cleaned = strings.ToLower(cleaned)

	matched := doctorContains(rows, cleaned)
	if len(matched) > 0 {
		return matched
	}

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return matched
	}
	return doctorContains(rows, tokens[len(tokens)-1])
}

func doctorContains(rows []Slot, needle string) []Slot {
	var out []Slot
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.DoctorName), needle) {
			out = append(out, row)
		}
	}
	return out
}

func filterLocation(rows []Slot, location string) []Slot {
	for _, token := range strings.Fields(strings.ToLower(location)) {
		if len(token) < minLocationTokenLen {
			continue
		}
		var matched []Slot
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Location), token) {
				matched = append(matched, row)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}
	return rows
}
