package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-ReservationGateway/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMerchantNotFound   = "merchant not found"
	msgMissingBookingID   = "missing booking_id"
	msgBookingNotFound    = "booking not found"
	msgInvalidAction      = "invalid action"
	msgMissingNewStart    = "missing new_start"
	msgInvalidNewStart    = "invalid new_start"
	msgBookingCancelled   = "booking is cancelled"
	msgNewSlotUnavailable = "new slot unavailable"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /google/update-booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /update-booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrMerchantNotFound):
			h.logger.Warn("POST /update-booking - Merchant not found: merchant_id=%s", req.MerchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, updateBooking.ErrMissingBookingID):
			handlers.RespondBadRequest(w, msgMissingBookingID)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("POST /update-booking - Booking not found: merchant_id=%s, booking_id=%s", req.MerchantID, req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrInvalidAction):
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, updateBooking.ErrMissingNewStart):
			handlers.RespondBadRequest(w, msgMissingNewStart)

		case errors.Is(err, updateBooking.ErrInvalidNewStart):
			handlers.RespondBadRequest(w, msgInvalidNewStart)

		case errors.Is(err, updateBooking.ErrBookingCancelled):
			h.logger.Warn("POST /update-booking - Booking cancelled: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgBookingCancelled)

		case errors.Is(err, updateBooking.ErrNewSlotUnavailable):
			h.logger.Warn("POST /update-booking - New slot unavailable: booking_id=%s, new_start=%s", req.BookingID, req.NewStart)
			handlers.RespondConflict(w, msgNewSlotUnavailable)

		default:
			h.logger.Error("POST /update-booking - Failed to update booking: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /update-booking - Booking updated: booking_id=%s, result=%s", result.BookingID, result.Result)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
