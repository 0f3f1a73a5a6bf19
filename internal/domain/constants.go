package domain

// Default configuration values
const (
	DefaultStepMinutes     = 15
	DefaultCapacityPerStep = 6
	DefaultPartySize       = 2
	MinPartySize           = 1

	DefaultTimezone     = "Europe/Paris"
	DefaultSource       = "google"
	DefaultCountryCode  = "33"
	DefaultCustomerName = "Client Google"
)

// Booking identifier prefixes
const (
	IdempotentIDPrefix = "IDEMP_"
	RandomIDPrefix     = "BK_"

	// IdempotentIDHashLength hex characters of the digest kept in the identifier
	IdempotentIDHashLength = 20
)

// Time format constants
const (
	TimeFormat            = "15:04"      // HH:MM
	TimeWithSecondsFormat = "15:04:05"   // HH:MM:SS
	DateFormat            = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat        = "2006-01-02 15:04:05"

	// StartFormat is the format of slot starts returned to the partner (+0100 offset style)
	StartFormat = "2006-01-02T15:04:05-0700"

	// SeedFormat is the format of the slot start inside the idempotency seed (+01:00 offset style)
	SeedFormat = "2006-01-02T15:04:05-07:00"

	// RandomIDTimeFormat is the slot start part of a random booking identifier
	RandomIDTimeFormat = "20060102_1504"
)

// Status values returned by the reservation endpoints
const (
	StatusOK        = "OK"
	StatusConfirmed = "CONFIRMED"
)
