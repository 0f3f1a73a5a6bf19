package availability_lookup

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	merchantRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/merchant"
)

const (
	outcomeAvailable = "available"
	outcomeFull      = "full"
	outcomeInvalid   = "invalid"
)

// UseCase use case для проверки доступности слотов партнером.
// Никогда не возвращает ошибку: все, что нельзя оценить, получает вместимость 0
type UseCase struct {
	merchantRepo MerchantRepository
	engine       CapacityEngine
	options      Options
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	merchantRepo MerchantRepository,
	engine CapacityEngine,
	options Options,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &UseCase{
		merchantRepo: merchantRepo,
		engine:       engine,
		options:      options,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute возвращает вместимость каждого запрошенного слота, отсортированную
// по исходной строке начала слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) *Response {
	merchantGUID := strings.TrimSpace(req.MerchantGUID)
	serviceID := strings.TrimSpace(req.ServiceID)
	starts := nonEmpty(req.Starts)

	uc.logger.Info("AvailabilityLookup: merchant=%s, service=%s, slots=%d, party=%d",
		merchantGUID, serviceID, len(starts), req.PartySize)

	// 1. Без ресторана, услуги или слотов отвечать нечего
	if merchantGUID == "" || serviceID == "" || len(starts) == 0 {
		return zeroCapacity(starts)
	}

	// 2. Ресторан
	merchantID, err := uc.merchantRepo.ResolveID(ctx, merchantGUID)
	if err != nil {
		if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
			uc.logger.Warn("AvailabilityLookup: merchant guid=%s not found", merchantGUID)
		} else {
			uc.logger.Error("AvailabilityLookup: failed to resolve merchant guid=%s: %v", merchantGUID, err)
		}
		return zeroCapacity(starts)
	}

	// 3. Услуга должна принадлежать этому ресторану и указывать известный период
	if !serviceBelongsTo(serviceID, merchantGUID) {
		uc.logger.Warn("AvailabilityLookup: service %s does not match merchant guid=%s", serviceID, merchantGUID)
		return zeroCapacity(starts)
	}

	// 4. Вместимость каждого слота
	results := make([]SlotCapacity, 0, len(starts))
	for _, raw := range starts {
		results = append(results, SlotCapacity{
			Start:    raw,
			Capacity: uc.capacityOf(ctx, merchantID, serviceID, raw, req.PartySize),
		})
	}

	sortByStart(results)

	return &Response{Results: results}
}

func (uc *UseCase) capacityOf(ctx context.Context, merchantID int64, serviceID, raw string, party int) int {
	start, err := domain.ParseInstant(raw, uc.options.Location)
	if err != nil {
		uc.logger.Warn("AvailabilityLookup: invalid start %q: %v", raw, err)
		uc.metrics.LookupSlot(outcomeInvalid)
		return 0
	}

	if uc.options.RoundToStep {
		start = uc.engine.RoundToStep(ctx, merchantID, start)
	}

	capacity, err := uc.engine.CapacityFor(ctx, merchantID, serviceID, start)
	if err != nil {
		uc.logger.Error("AvailabilityLookup: capacity for %q failed: %v", raw, err)
		uc.metrics.LookupSlot(outcomeInvalid)
		return 0
	}

	if uc.options.FilterByPartySize && party > capacity {
		capacity = 0
	}

	if capacity > 0 {
		uc.metrics.LookupSlot(outcomeAvailable)
	} else {
		uc.metrics.LookupSlot(outcomeFull)
	}
	return capacity
}

// serviceBelongsTo проверяет формат "<merchantGUID>:noon|evening"
func serviceBelongsTo(serviceID, merchantGUID string) bool {
	idx := strings.LastIndex(serviceID, ":")
	if idx < 0 {
		return false
	}
	suffix := domain.Period(strings.ToLower(serviceID[idx+1:]))
	if suffix != domain.PeriodNoon && suffix != domain.PeriodEvening {
		return false
	}
	return serviceID[:idx] == merchantGUID
}

func nonEmpty(starts []string) []string {
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func zeroCapacity(starts []string) *Response {
	results := make([]SlotCapacity, 0, len(starts))
	for _, s := range starts {
		results = append(results, SlotCapacity{Start: s})
	}
	sortByStart(results)
	return &Response{Results: results}
}

// sortByStart сортирует по исходной строке, не по моменту времени
func sortByStart(results []SlotCapacity) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Start < results[j].Start
	})
}
