package domain

import "strings"

// NormalizePhone keeps the digits of a phone number.
// A 10-digit national number with a leading 0 is rewritten to +<countryCode> without the 0,
// an input starting with '+' keeps the plus. Returns nil when there are no digits.
func NormalizePhone(raw, countryCode string) *string {
	if raw == "" {
		return nil
	}

	d := digits(raw)
	if d == "" {
		return nil
	}

	var out string
	switch {
	case len(d) == 10 && d[0] == '0':
		out = "+" + countryCode + d[1:]
	case strings.HasPrefix(raw, "+"):
		out = "+" + d
	default:
		out = d
	}
	return &out
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
