package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// Engine считает оставшуюся вместимость слота: квота на шаг минус активные бронирования
type Engine struct {
	settings     SettingsResolver
	bookings     BookingCounter
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewEngine создает движок слотов. location задает часовой пояс ресторана,
// в котором определяется "сегодня" для ограничений текущего дня
func NewEngine(settings SettingsResolver, bookings BookingCounter, location *time.Location, logger Logger) *Engine {
	return &Engine{
		settings:     settings,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// CapacityFor возвращает оставшуюся вместимость слота, начинающегося в start.
// Дата и время слота берутся в смещении самого start
func (e *Engine) CapacityFor(ctx context.Context, merchantID int64, serviceID string, start time.Time) (int, error) {
	// 1. Конфигурация ресторана
	cfg := e.settings.Resolve(ctx, merchantID)

	date := start.Format(domain.DateFormat)
	hour := types.NewTimeString(start)

	// 2. Ограничение текущего дня для периода
	period := domain.ServiceIdentifier(serviceID).Period()
	cutoff := cfg.CutoffFor(period)
	today := e.timeProvider.Now().In(e.location).Format(domain.DateFormat)

	if date == today && !cutoff.IsZero() && !hour.IsBefore(cutoff) {
		return 0, nil
	}

	// 3. Занятость слота
	count, err := e.bookings.CountActive(ctx, merchantID, date, hour)
	if err != nil {
		e.logger.Error("CapacityFor: failed to count bookings merchant=%d date=%s hour=%s: %v",
			merchantID, date, hour, err)
		return 0, fmt.Errorf("%w: %v", ErrCountFailed, err)
	}

	return max(0, cfg.CapacityPerStep-count), nil
}

// RoundToStep округляет start вниз до шага сетки ресторана внутри часа
func (e *Engine) RoundToStep(ctx context.Context, merchantID int64, start time.Time) time.Time {
	step := max(1, e.settings.Resolve(ctx, merchantID).StepMinutes)
	minute := (start.Minute() / step) * step

	return time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), minute, 0, 0, start.Location())
}
