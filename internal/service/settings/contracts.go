package settings

import (
	"context"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации ресторанов
type ConfigRepository interface {
	GetByMerchant(ctx context.Context, merchantID int64) (*domain.MerchantConfigRow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
