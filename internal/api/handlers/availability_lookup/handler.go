package availability_lookup

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

type Handler struct {
	useCase          AvailabilityLookupUseCase
	defaultPartySize int
	logger           Logger
}

func NewHandler(useCase AvailabilityLookupUseCase, defaultPartySize int, logger Logger) *Handler {
	if defaultPartySize <= 0 {
		defaultPartySize = domain.DefaultPartySize
	}
	return &Handler{
		useCase:          useCase,
		defaultPartySize: defaultPartySize,
		logger:           logger,
	}
}

// Handle POST /google/availability-lookup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		// Битое тело не роняет пакет: отвечаем пустым списком
		h.logger.Warn("POST /availability-lookup - Invalid request body: %v", err)
		handlers.RespondJSON(w, http.StatusOK, &LookupResponse{Results: []SlotResponse{}})
		return
	}

	// Поиск никогда не падает: проблемы отдельных слотов превращаются в нулевую вместимость
	result := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.defaultPartySize))

	h.logger.Info("POST /availability-lookup - merchant_id=%s, service_id=%s, slots=%d",
		req.MerchantID, req.ServiceID, len(result.Results))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
