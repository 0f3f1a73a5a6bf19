package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// MerchantRepository интерфейс репозитория ресторанов
type MerchantRepository interface {
	ResolveID(ctx context.Context, guid string) (int64, error)
}

// CapacityEngine движок вместимости слотов
type CapacityEngine interface {
	CapacityFor(ctx context.Context, merchantID int64, serviceID string, start time.Time) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistsByIdentifier(ctx context.Context, id string) (bool, error)
	Columns(ctx context.Context) (domain.Columns, error)
	Insert(ctx context.Context, row map[string]interface{}) error
}

// IDGenerator генератор случайных идентификаторов бронирований
type IDGenerator interface {
	NewID(start time.Time) (string, error)
}

// MetricsRecorder учет результатов создания бронирований
type MetricsRecorder interface {
	BookingOutcome(outcome string)
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
