package update_booking

import (
	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-ReservationGateway/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	MerchantID   string               `json:"merchant_id"`
	BookingID    string               `json:"booking_id"`
	Action       string               `json:"action"`
	NewStart     string               `json:"new_start"`
	NewPartySize handlers.FlexibleInt `json:"new_party_size"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Status    string `json:"status"`
	BookingID string `json:"booking_id"`
	Result    string `json:"result"`
	Start     string `json:"start,omitempty"`
	PartySize *int   `json:"party_size,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest() *updateBooking.Request {
	return &updateBooking.Request{
		MerchantGUID: r.MerchantID,
		BookingID:    r.BookingID,
		Action:       r.Action,
		NewStart:     r.NewStart,
		NewPartySize: r.NewPartySize.Ptr(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Status:    resp.Status,
		BookingID: resp.BookingID,
		Result:    resp.Result,
		Start:     resp.Start,
		PartySize: resp.PartySize,
	}
}
