package update_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

var (
	// ErrMerchantNotFound возвращается, когда ресторан не найден
	ErrMerchantNotFound = fmt.Errorf("update_booking: merchant not found: %w", domain.ErrNotFound)

	// ErrMissingBookingID возвращается, когда не передан идентификатор бронирования
	ErrMissingBookingID = fmt.Errorf("update_booking: missing booking_id: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда у ресторана нет такого бронирования
	ErrBookingNotFound = fmt.Errorf("update_booking: booking not found: %w", domain.ErrNotFound)

	// ErrInvalidAction возвращается для действий кроме CANCEL и MODIFY
	ErrInvalidAction = fmt.Errorf("update_booking: unsupported action: %w", domain.ErrValidation)

	// ErrMissingNewStart возвращается, когда MODIFY пришел без нового начала слота
	ErrMissingNewStart = fmt.Errorf("update_booking: missing new_start: %w", domain.ErrValidation)

	// ErrInvalidNewStart возвращается, когда новое начало слота не разбирается
	ErrInvalidNewStart = fmt.Errorf("update_booking: invalid new_start: %w", domain.ErrValidation)

	// ErrBookingCancelled возвращается при попытке изменить отмененное бронирование
	ErrBookingCancelled = fmt.Errorf("update_booking: booking is cancelled: %w", domain.ErrConflict)

	// ErrNewSlotUnavailable возвращается, когда в новом слоте не хватает мест
	ErrNewSlotUnavailable = fmt.Errorf("update_booking: new slot unavailable: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("update_booking: internal error: %w", domain.ErrPersistence)
)
