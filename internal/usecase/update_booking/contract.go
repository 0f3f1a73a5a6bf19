package update_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// MerchantRepository интерфейс репозитория ресторанов
type MerchantRepository interface {
	ResolveID(ctx context.Context, guid string) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindByIdentifier(ctx context.Context, merchantID int64, id string) (*domain.Booking, error)
	Update(ctx context.Context, merchantID int64, id string, changes domain.BookingChanges) error
}

// CapacityEngine движок вместимости слотов
type CapacityEngine interface {
	CapacityFor(ctx context.Context, merchantID int64, serviceID string, start time.Time) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет изменений бронирований
type MetricsRecorder interface {
	BookingUpdate(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
