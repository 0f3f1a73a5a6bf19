package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// SettingsResolver источник эффективной конфигурации ресторана
type SettingsResolver interface {
	Resolve(ctx context.Context, merchantID int64) domain.MerchantConfig
}

// BookingCounter считает активные бронирования слота
type BookingCounter interface {
	CountActive(ctx context.Context, merchantID int64, date string, hour types.TimeString) (int, error)
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
