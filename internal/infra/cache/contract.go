package cache

import (
	"context"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// MerchantRepository источник ID ресторанов
type MerchantRepository interface {
	ResolveID(ctx context.Context, guid string) (int64, error)
}

// ConfigRepository источник конфигурации ресторанов
type ConfigRepository interface {
	GetByMerchant(ctx context.Context, merchantID int64) (*domain.MerchantConfigRow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
