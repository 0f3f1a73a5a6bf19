package availability_lookup

import (
	"encoding/json"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
	availabilityLookup "github.com/m04kA/SMC-ReservationGateway/internal/usecase/availability_lookup"
)

// LookupRequest HTTP request model
type LookupRequest struct {
	MerchantID string               `json:"merchant_id"`
	ServiceID  string               `json:"service_id"`
	Slots      json.RawMessage      `json:"slots"`
	PartySize  handlers.FlexibleInt `json:"party_size"`
}

// LookupResponse HTTP response model
type LookupResponse struct {
	Results []SlotResponse `json:"results"`
}

// SlotResponse вместимость одного запрошенного слота
type SlotResponse struct {
	Start    string `json:"start"`
	Capacity int    `json:"capacity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *LookupRequest) ToUseCaseRequest(defaultPartySize int) *availabilityLookup.Request {
	return &availabilityLookup.Request{
		MerchantGUID: r.MerchantID,
		ServiceID:    r.ServiceID,
		Starts:       r.StartStrings(),
		PartySize:    r.PartySize.Or(defaultPartySize),
	}
}

// StartStrings возвращает только непустые строковые элементы slots.
// Числа, объекты и не-массив отбрасываются без ошибки
func (r *LookupRequest) StartStrings() []string {
	var raw []json.RawMessage
	if err := json.Unmarshal(r.Slots, &raw); err != nil {
		return nil
	}

	starts := make([]string, 0, len(raw))
	for _, item := range raw {
		var start string
		if err := json.Unmarshal(item, &start); err != nil || start == "" {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *availabilityLookup.Response) *LookupResponse {
	results := make([]SlotResponse, 0, len(resp.Results))
	for _, slot := range resp.Results {
		results = append(results, SlotResponse{
			Start:    slot.Start,
			Capacity: slot.Capacity,
		})
	}
	return &LookupResponse{Results: results}
}
