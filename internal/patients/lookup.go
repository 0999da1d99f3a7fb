package patients

import "strings"

// IsReturning reports whether name and dob identify a patient already in the
// directory. The first whitespace token of the name is the first name and
// the last token the last name; a single-token name has an empty last name.
// First and last names compare case-insensitively, dates of birth as exact
// strings. Pure function of its inputs.
func IsReturning(rows []Patient, name, dob string) bool {
	if name == "" || dob == "" {
		return false
	}
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return false
	}
	first := tokens[0]
	last := ""
	if len(tokens) > 1 {
		last = tokens[len(tokens)-1]
	}
	for _, row := range rows {
		if strings.EqualFold(row.FirstName, first) &&
			strings.EqualFold(row.LastName, last) &&
			row.DOB == dob {
			return true
		}
	}
	return false
}
