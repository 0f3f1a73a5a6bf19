package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	createBooking "github.com/m04kA/SMC-ReservationGateway/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MerchantID string               `json:"merchant_id"`
	ServiceID  string               `json:"service_id"`
	Start      string               `json:"start"`
	Slots      []string             `json:"slots"`
	PartySize  handlers.FlexibleInt `json:"party_size"`
	Customer   CustomerRequest      `json:"customer"`
}

// CustomerRequest данные гостя
type CustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	PartySize int    `json:"party_size"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(idempotencyKey string) *createBooking.Request {
	return &createBooking.Request{
		MerchantGUID: r.MerchantID,
		ServiceID:    r.ServiceID,
		Start:        r.Start,
		Slots:        r.Slots,
		PartySize:    r.PartySize.Ptr(),
		Customer: createBooking.Customer{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID: resp.ID,
		Status:    domain.StatusConfirmed,
		Start:     resp.Start,
		PartySize: resp.PartySize,
	}
}
