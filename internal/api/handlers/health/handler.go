package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// Response HTTP response model
type Response struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type Handler struct {
	location     *time.Location
	timeProvider TimeProvider
}

func NewHandler(location *time.Location, timeProvider TimeProvider) *Handler {
	if location == nil {
		location = time.UTC
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Handler{
		location:     location,
		timeProvider: timeProvider,
	}
}

// Handle GET /google/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Status: "ok",
		Time:   h.timeProvider.Now().In(h.location).Format(domain.StartFormat),
	})
}
