package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/booking"
	merchantRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/merchant"
	"github.com/m04kA/SMC-ReservationGateway/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

const (
	outcomeCreated  = "created"
	outcomeReplayed = "replayed"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования партнером.
// Повтор запроса с тем же ключом идемпотентности возвращает уже созданное бронирование
type UseCase struct {
	merchantRepo MerchantRepository
	engine       CapacityEngine
	bookingRepo  BookingRepository
	idGenerator  IDGenerator
	options      Options
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	merchantRepo MerchantRepository,
	engine CapacityEngine,
	bookingRepo BookingRepository,
	idGenerator IDGenerator,
	options Options,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.DefaultPartySize == 0 {
		options.DefaultPartySize = domain.DefaultPartySize
	}
	return &UseCase{
		merchantRepo: merchantRepo,
		engine:       engine,
		bookingRepo:  bookingRepo,
		idGenerator:  idGenerator,
		options:      options,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	merchantGUID := strings.TrimSpace(req.MerchantGUID)
	serviceID := strings.TrimSpace(req.ServiceID)

	uc.logger.Info("CreateBooking: merchant=%s, service=%s, start=%s, idempotent=%t",
		merchantGUID, serviceID, req.Start, req.IdempotencyKey != "")

	resp, err := uc.execute(ctx, req, merchantGUID, serviceID)
	uc.metrics.BookingOutcome(outcomeOf(resp, err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request, merchantGUID, serviceID string) (*Response, error) {
	// 1. Ресторан
	merchantID, err := uc.merchantRepo.ResolveID(ctx, merchantGUID)
	if err != nil {
		if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
			uc.logger.Warn("CreateBooking: merchant guid=%s not found", merchantGUID)
			return nil, ErrMerchantNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve merchant guid=%s: %v", merchantGUID, err)
		return nil, fmt.Errorf("%w: failed to resolve merchant: %v", ErrInternal, err)
	}

	// 2. Начало слота
	start, err := resolveStart(req, uc.options.Location)
	if err != nil {
		uc.logger.Warn("CreateBooking: merchant id=%d: %v", merchantID, err)
		return nil, err
	}

	// 3. Размер группы
	party := resolvePartySize(req.PartySize, uc.options.DefaultPartySize)

	// 4. Повтор запроса с ключом идемпотентности не проверяет вместимость повторно
	var bookingID string
	if req.IdempotencyKey != "" {
		bookingID = bookings.IdempotentID(bookings.IdempotencySeed{
			MerchantGUID: merchantGUID,
			ServiceID:    serviceID,
			Start:        start,
			PartySize:    party,
			Email:        req.Customer.Email,
			Key:          req.IdempotencyKey,
		})

		exists, err := uc.bookingRepo.ExistsByIdentifier(ctx, bookingID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check booking id=%s: %v", bookingID, err)
			return nil, fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Info("CreateBooking: replaying booking id=%s", bookingID)
			return uc.response(bookingID, start, party, true), nil
		}
	}

	// 5. Проверка вместимости. Подсчет и вставка не атомарны: при N одновременных
	// запросах на один слот вместимость может быть превышена не более чем на N-1 бронирований
	capacity, err := uc.engine.CapacityFor(ctx, merchantID, serviceID, start)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get capacity merchant id=%d: %v", merchantID, err)
		return nil, fmt.Errorf("%w: failed to get capacity: %v", ErrInternal, err)
	}
	if capacity <= 0 {
		uc.logger.Warn("CreateBooking: slot %s unavailable for merchant id=%d", start.Format(domain.StartFormat), merchantID)
		return nil, ErrSlotUnavailable
	}
	if party > capacity {
		uc.logger.Warn("CreateBooking: party=%d exceeds capacity=%d for merchant id=%d", party, capacity, merchantID)
		return nil, ErrPartyExceedsCapacity
	}

	// 6. Идентификатор для запроса без ключа идемпотентности
	if bookingID == "" {
		bookingID, err = uc.idGenerator.NewID(start)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate booking id: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// 7. Запись под схему таблицы
	columns, err := uc.bookingRepo.Columns(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read booking schema: %v", err)
		return nil, fmt.Errorf("%w: failed to read booking schema: %v", ErrInternal, err)
	}

	record := domain.BookingRecord{
		ID:           bookingID,
		MerchantID:   merchantID,
		Date:         start.Format(domain.DateFormat),
		Time:         types.NewTimeString(start),
		PartySize:    party,
		CustomerName: customerName(req.Customer, uc.options.DefaultCustomerName),
		Email:        optionalString(req.Customer.Email),
		Phone:        domain.NormalizePhone(req.Customer.Phone, uc.options.CountryCode),
		Source:       uc.options.Source,
	}
	now := uc.timeProvider.Now().In(uc.options.Location)

	if err := uc.bookingRepo.Insert(ctx, bookings.BuildRow(record, columns, now)); err != nil {
		// Гонка двух одинаковых запросов: побеждает первая вставка, второй получает повтор
		if errors.Is(err, bookingRepo.ErrDuplicateIdentifier) {
			uc.logger.Info("CreateBooking: booking id=%s already stored, replaying", bookingID)
			return uc.response(bookingID, start, party, true), nil
		}
		uc.logger.Error("CreateBooking: failed to insert booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: db insert failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%s created for merchant id=%d at %s, party=%d",
		bookingID, merchantID, start.Format(domain.StartFormat), party)

	return uc.response(bookingID, start, party, false), nil
}

func (uc *UseCase) response(id string, start time.Time, party int, replayed bool) *Response {
	return &Response{
		Status:    domain.StatusOK,
		ID:        id,
		Start:     start.Format(domain.StartFormat),
		PartySize: party,
		Replayed:  replayed,
	}
}

func outcomeOf(resp *Response, err error) string {
	switch {
	case err == nil && resp.Replayed:
		return outcomeReplayed
	case err == nil:
		return outcomeCreated
	case errors.Is(err, domain.ErrConflict):
		return outcomeConflict
	case errors.Is(err, domain.ErrPersistence):
		return outcomeError
	default:
		return outcomeRejected
	}
}
