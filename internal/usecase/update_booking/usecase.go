package update_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/booking"
	merchantRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/merchant"
	"github.com/m04kA/SMC-ReservationGateway/pkg/ptr"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

const (
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// modifyServiceID у сохраненного бронирования нет услуги, поэтому при переносе
// действует ограничение текущего дня обеденного периода
const modifyServiceID = ""

// UseCase use case для отмены и переноса бронирования партнером
type UseCase struct {
	merchantRepo MerchantRepository
	bookingRepo  BookingRepository
	engine       CapacityEngine
	txManager    TransactionManager
	options      Options
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	merchantRepo MerchantRepository,
	bookingRepo BookingRepository,
	engine CapacityEngine,
	txManager TransactionManager,
	options Options,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &UseCase{
		merchantRepo: merchantRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		txManager:    txManager,
		options:      options,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Поиск, проверка вместимости и запись идут в одной транзакции с блокировкой строки бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	merchantGUID := strings.TrimSpace(req.MerchantGUID)
	bookingID := strings.TrimSpace(req.BookingID)

	uc.logger.Info("UpdateBooking: merchant=%s, booking=%s, action=%s", merchantGUID, bookingID, req.Action)

	resp, err := uc.execute(ctx, req, merchantGUID, bookingID)
	switch {
	case err == nil:
		uc.metrics.BookingUpdate(resp.Result)
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.BookingUpdate(outcomeConflict)
	case errors.Is(err, domain.ErrPersistence):
		uc.metrics.BookingUpdate(outcomeError)
	default:
		uc.metrics.BookingUpdate(outcomeRejected)
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request, merchantGUID, bookingID string) (*Response, error) {
	// 1. Ресторан
	merchantID, err := uc.merchantRepo.ResolveID(ctx, merchantGUID)
	if err != nil {
		if errors.Is(err, merchantRepo.ErrMerchantNotFound) {
			uc.logger.Warn("UpdateBooking: merchant guid=%s not found", merchantGUID)
			return nil, ErrMerchantNotFound
		}
		uc.logger.Error("UpdateBooking: failed to resolve merchant guid=%s: %v", merchantGUID, err)
		return nil, fmt.Errorf("%w: failed to resolve merchant: %v", ErrInternal, err)
	}

	// 2. Идентификатор бронирования
	if bookingID == "" {
		uc.logger.Warn("UpdateBooking: missing booking id for merchant id=%d", merchantID)
		return nil, ErrMissingBookingID
	}

	var result *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Бронирование ресторана (строка блокируется до конца транзакции)
		booking, err := uc.bookingRepo.FindByIdentifier(txCtx, merchantID, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%s not found for merchant id=%d", bookingID, merchantID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 4. Действие
		switch domain.BookingAction(strings.ToUpper(strings.TrimSpace(req.Action))) {
		case domain.ActionCancel:
			result, err = uc.cancel(txCtx, merchantID, booking)
		case domain.ActionModify:
			result, err = uc.modify(txCtx, merchantID, booking, req)
		default:
			uc.logger.Warn("UpdateBooking: unsupported action %q for booking id=%s", req.Action, bookingID)
			return ErrInvalidAction
		}
		return err
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindPersistence && !errors.Is(err, domain.ErrPersistence) {
			// Ошибки begin/commit приходят из менеджера транзакций без вида
			uc.logger.Error("UpdateBooking: transaction failed for booking id=%s: %v", bookingID, err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	return result, nil
}

// cancel отмена идемпотентна: повторная отмена снова помечает бронирование и отвечает успехом
func (uc *UseCase) cancel(ctx context.Context, merchantID int64, booking *domain.Booking) (*Response, error) {
	changes := domain.BookingChanges{
		State:     ptr.Ptr(domain.StateCancelled),
		UpdatedAt: uc.now(),
	}

	if err := uc.bookingRepo.Update(ctx, merchantID, booking.ID, changes); err != nil {
		uc.logger.Error("UpdateBooking: failed to cancel booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBooking: booking id=%s cancelled", booking.ID)

	return &Response{
		Status:    domain.StatusOK,
		BookingID: booking.ID,
		Result:    string(domain.ResultCancelled),
	}, nil
}

// modify переносит бронирование. Места, занятые самим бронированием в новом слоте,
// не вычитаются из занятости
func (uc *UseCase) modify(ctx context.Context, merchantID int64, booking *domain.Booking, req *Request) (*Response, error) {
	if booking.State == domain.StateCancelled {
		uc.logger.Warn("UpdateBooking: booking id=%s is cancelled and cannot be modified", booking.ID)
		return nil, ErrBookingCancelled
	}

	raw := strings.TrimSpace(req.NewStart)
	if raw == "" {
		uc.logger.Warn("UpdateBooking: missing new start for booking id=%s", booking.ID)
		return nil, ErrMissingNewStart
	}

	start, err := domain.ParseInstant(raw, uc.options.Location)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid new start %q for booking id=%s", raw, booking.ID)
		return nil, ErrInvalidNewStart
	}

	party := max(domain.MinPartySize, booking.PartySize)
	if req.NewPartySize != nil {
		party = max(domain.MinPartySize, *req.NewPartySize)
	}

	capacity, err := uc.engine.CapacityFor(ctx, merchantID, modifyServiceID, start)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get capacity for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get capacity: %v", ErrInternal, err)
	}
	if capacity <= 0 || party > capacity {
		uc.logger.Warn("UpdateBooking: new slot %s unavailable for booking id=%s (party=%d, capacity=%d)",
			raw, booking.ID, party, capacity)
		return nil, ErrNewSlotUnavailable
	}

	date := start.Format(domain.DateFormat)
	hour := types.NewTimeString(start)
	changes := domain.BookingChanges{
		Date:      &date,
		Time:      &hour,
		PartySize: &party,
		UpdatedAt: uc.now(),
	}

	if err := uc.bookingRepo.Update(ctx, merchantID, booking.ID, changes); err != nil {
		uc.logger.Error("UpdateBooking: failed to modify booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to modify booking: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBooking: booking id=%s moved to %s, party=%d", booking.ID, start.Format(domain.StartFormat), party)

	return &Response{
		Status:    domain.StatusOK,
		BookingID: booking.ID,
		Result:    string(domain.ResultModified),
		Start:     start.Format(domain.StartFormat),
		PartySize: &party,
	}, nil
}

func (uc *UseCase) now() time.Time {
	return uc.timeProvider.Now().In(uc.options.Location)
}
