package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// BookingState is the lifecycle state of a booking
type BookingState string

const (
	StateConfirmed BookingState = "CONFIRMED"
	StateCancelled BookingState = "CANCELLED"
	StateRejected  BookingState = "REJECTED"
)

// Booking represents a reservation stored in the merchant's booking table
type Booking struct {
	ID         string // booking identifier (guid column)
	MerchantID int64
	Date       string // YYYY-MM-DD
	Time       types.TimeString
	PartySize  int
	State      BookingState

	CustomerName string
	Email        *string
	Phone        *string
	Source       string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// IsActive returns true if the booking consumes capacity
func (b *Booking) IsActive() bool {
	return b.State == StateConfirmed
}

// BookingRecord is the data of a new booking before it is adapted to the table schema
type BookingRecord struct {
	ID           string
	MerchantID   int64
	Date         string
	Time         types.TimeString
	PartySize    int
	CustomerName string
	Email        *string
	Phone        *string
	Source       string
}

// BookingChanges is a partial update of a booking; nil fields are left untouched
type BookingChanges struct {
	State     *BookingState
	Date      *string
	Time      *types.TimeString
	PartySize *int
	UpdatedAt time.Time
}

// BookingAction is the update requested by the partner
type BookingAction string

const (
	ActionCancel BookingAction = "CANCEL"
	ActionModify BookingAction = "MODIFY"
)

// UpdateResult is reported back after a successful update
type UpdateResult string

const (
	ResultCancelled UpdateResult = "CANCELLED"
	ResultModified  UpdateResult = "MODIFIED"
)
