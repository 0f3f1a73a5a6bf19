package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// resolveStart берет start, а если он пустой, то первый слот
func resolveStart(req *Request, loc *time.Location) (time.Time, error) {
	raw := strings.TrimSpace(req.Start)
	if raw == "" && len(req.Slots) > 0 {
		raw = strings.TrimSpace(req.Slots[0])
	}
	if raw == "" {
		return time.Time{}, ErrMissingStart
	}

	start, err := domain.ParseInstant(raw, loc)
	if err != nil {
		return time.Time{}, ErrInvalidStart
	}
	return start, nil
}

// resolvePartySize размер группы не меньше 1, по умолчанию def
func resolvePartySize(party *int, def int) int {
	if party == nil {
		return max(domain.MinPartySize, def)
	}
	return max(domain.MinPartySize, *party)
}

// customerName "имя фамилия" или имя по умолчанию
func customerName(c Customer, fallback string) string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		return fallback
	}
	return name
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
