package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ReservationGateway/internal/usecase/create_booking"
)

// HeaderIdempotencyKey заголовок с ключом идемпотентности партнера
const HeaderIdempotencyKey = "X-Idempotency-Key"

const (
	msgInvalidRequestBody   = "invalid request body"
	msgMerchantNotFound     = "merchant not found"
	msgMissingStart         = "missing 'start' or 'slots[0]'"
	msgInvalidStart         = "invalid start datetime"
	msgSlotUnavailable      = "slot unavailable"
	msgPartyExceedsCapacity = "party exceeds capacity"
	msgInsertFailed         = "db insert failed"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /google/create-booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /create-booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(r.Header.Get(HeaderIdempotencyKey)))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMerchantNotFound):
			h.logger.Warn("POST /create-booking - Merchant not found: merchant_id=%s", req.MerchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, createBooking.ErrMissingStart):
			h.logger.Warn("POST /create-booking - Missing start: merchant_id=%s", req.MerchantID)
			handlers.RespondBadRequest(w, msgMissingStart)

		case errors.Is(err, createBooking.ErrInvalidStart):
			h.logger.Warn("POST /create-booking - Invalid start: merchant_id=%s, start=%q", req.MerchantID, req.Start)
			handlers.RespondBadRequest(w, msgInvalidStart)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /create-booking - Slot unavailable: merchant_id=%s, service_id=%s", req.MerchantID, req.ServiceID)
			handlers.RespondUnavailable(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrPartyExceedsCapacity):
			h.logger.Warn("POST /create-booking - Party exceeds capacity: merchant_id=%s, service_id=%s", req.MerchantID, req.ServiceID)
			handlers.RespondUnavailable(w, msgPartyExceedsCapacity)

		default:
			h.logger.Error("POST /create-booking - Failed to create booking: merchant_id=%s, error=%v", req.MerchantID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInsertFailed)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /create-booking - Booking confirmed: booking_id=%s, merchant_id=%s, replayed=%t",
		result.ID, req.MerchantID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
