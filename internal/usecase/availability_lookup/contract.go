package availability_lookup

import (
	"context"
	"time"
)

// MerchantRepository интерфейс репозитория ресторанов
type MerchantRepository interface {
	ResolveID(ctx context.Context, guid string) (int64, error)
}

// CapacityEngine движок вместимости слотов
type CapacityEngine interface {
	CapacityFor(ctx context.Context, merchantID int64, serviceID string, start time.Time) (int, error)
	RoundToStep(ctx context.Context, merchantID int64, start time.Time) time.Time
}

// MetricsRecorder учет оцененных слотов
type MetricsRecorder interface {
	LookupSlot(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
