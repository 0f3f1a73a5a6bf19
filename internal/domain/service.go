package domain

import "strings"

// Period is the meal period a service identifier refers to
type Period string

const (
	PeriodNoon    Period = "noon"
	PeriodEvening Period = "evening"
)

// ServiceIdentifier is the partner's "<merchant-reference>:<period>" service id
type ServiceIdentifier string

// Period returns the lowercased suffix after the last ':'.
// Anything other than "evening" (including a missing suffix) is noon.
func (s ServiceIdentifier) Period() Period {
	raw := string(s)
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		raw = raw[idx+1:]
	}
	if Period(strings.ToLower(raw)) == PeriodEvening {
		return PeriodEvening
	}
	return PeriodNoon
}

// Reference is the part before the last ':'
func (s ServiceIdentifier) Reference() string {
	raw := string(s)
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}
