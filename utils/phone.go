package utils

import "strings"

// NormalizePhone converts freeform phone input into E.164. Numbers without a
// country code default to +91. Malformed input degrades to a best-effort guess;
// input with no digits at all returns "".
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	hadPlus := strings.HasPrefix(trimmed, "+")

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}

	if hadPlus {
		return "+" + d
	}

	switch {
	case len(d) == 12 && strings.HasPrefix(d, "91"):
		return "+" + d
	case len(d) == 11 && strings.HasPrefix(d, "0"):
		return "+91" + d[1:]
	case len(d) == 10:
		return "+91" + d
	default:
		return "+" + d
	}
}

var phoneListDelimiters = []string{",", ";", "|", "\n"}

// NormalizePhoneList splits a delimiter-separated string of phone numbers,
// normalizes each entry and returns the deduplicated set in input order.
// Entries with no digits are silently dropped.
func NormalizePhoneList(raw string) []string {
	parts := []string{raw}
	for _, delim := range phoneListDelimiters {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, delim)...)
		}
		parts = next
	}

	seen := make(map[string]bool)
	var phones []string
	for _, p := range parts {
		normalized := NormalizePhone(p)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		phones = append(phones, normalized)
	}
	return phones
}
