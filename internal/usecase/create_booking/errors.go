package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

var (
	// ErrMerchantNotFound возвращается, когда ресторан не найден
	ErrMerchantNotFound = fmt.Errorf("create_booking: merchant not found: %w", domain.ErrNotFound)

	// ErrMissingStart возвращается, когда не передано ни start, ни slots[0]
	ErrMissingStart = fmt.Errorf("create_booking: missing start: %w", domain.ErrValidation)

	// ErrInvalidStart возвращается, когда начало слота не разбирается как дата-время
	ErrInvalidStart = fmt.Errorf("create_booking: invalid start datetime: %w", domain.ErrValidation)

	// ErrSlotUnavailable возвращается, когда в слоте не осталось мест
	ErrSlotUnavailable = fmt.Errorf("create_booking: slot unavailable: %w", domain.ErrConflict)

	// ErrPartyExceedsCapacity возвращается, когда группа больше оставшейся вместимости
	ErrPartyExceedsCapacity = fmt.Errorf("create_booking: party exceeds capacity: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrPersistence)
)
