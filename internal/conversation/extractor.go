package conversation

import "strings"

// Identity fields are extracted from free text with a simple keyword scan:
// the key token must be immediately followed by the separator, the value is
// everything after the separator up to the next comma or end of line. A key
// without a separator is malformed input and leaves the field unset; the
// next turn can try again.

type identityField struct {
	key     string
	example string
	get     func(*State) string
	set     func(*State, string)
}

// identityFields is the required set in fixed prompt order.
var identityFields = []identityField{
	{"name", "your full name (e.g., Name: Jane Doe)",
		func(s *State) string { return s.Name }, func(s *State, v string) { s.Name = v }},
	{"dob", "your DOB (e.g., DOB: 1990-08-23)",
		func(s *State) string { return s.DOB }, func(s *State, v string) { s.DOB = v }},
	{"dr", "preferred doctor (e.g., Dr: Arjun Sharma)",
		func(s *State) string { return s.Doctor }, func(s *State, v string) { s.Doctor = v }},
	{"location", "preferred location (e.g., Location: Mumbai Central)",
		func(s *State) string { return s.Location }, func(s *State, v string) { s.Location = v }},
}

// ExtractIdentity scans a raw user turn and fills any identity fields that
// are still unset. Extraction is idempotent: the first value ever seen for a
// field wins, and repeating a field on a later turn changes nothing.
func ExtractIdentity(s *State, turn string) {
	for _, f := range identityFields {
		if f.get(s) != "" {
			continue
		}
		if value, ok := extractKeyedValue(turn, f.key, ","); ok {
			f.set(s, value)
		}
	}
}

// extractKeyedValue looks for key followed by ':' (ASCII case-insensitive)
// and returns the trimmed value up to the first of the given delimiters or
// end of line. Returns false for a missing key, a key without separator, or
// an empty value.
func extractKeyedValue(turn, key string, delims string) (string, bool) {
	idx := strings.Index(lowerASCII(turn), key+":")
	if idx < 0 {
		return "", false
	}
	value := turn[idx+len(key)+1:]
	if cut := strings.IndexAny(value, delims); cut >= 0 {
		value = value[:cut]
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// lowerASCII lowercases ASCII letters only. Unlike strings.ToLower it is
// byte-length-preserving, so indexes into the result are valid in the
// original string even when the turn carries multi-byte runes whose case
// forms differ in width. The keys are plain ASCII, so this is all the
// folding key matching needs.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, s)
}

// MissingIdentityPrompt enumerates the still-unset required fields in fixed
// order, each with an example, as a single assistant message. Returns the
// empty string when nothing is missing.
func MissingIdentityPrompt(s *State) string {
	var missing []string
	for _, f := range identityFields {
		if f.get(s) == "" {
			missing = append(missing, f.example)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "Please provide: " + strings.Join(missing, "; ")
}
