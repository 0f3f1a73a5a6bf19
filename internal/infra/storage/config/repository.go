package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/psqlbuilder"
)

const tableName = "restaurant_config"

// Repository репозиторий конфигурации бронирований ресторана
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMerchant возвращает сырую конфигурацию ресторана.
// Значения по умолчанию здесь не подставляются, этим занимается сервис настроек
func (r *Repository) GetByMerchant(ctx context.Context, merchantID int64) (*domain.MerchantConfigRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_step",
		"max_booking_by_step",
		"booking_step_table_count",
		"today_booking_noon_max_hour",
		"today_booking_evening_max_hour",
	).
		From(tableName).
		Where(squirrel.Eq{"restaurant_id": merchantID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMerchant - build select query: %v", ErrBuildQuery, err)
	}

	var (
		step, maxByStep, tableCount sql.NullInt64
		noonMax, eveningMax         sql.NullString
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&step,
		&maxByStep,
		&tableCount,
		&noonMax,
		&eveningMax,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: GetByMerchant - scan row: %v", ErrScanRow, err)
	}

	return &domain.MerchantConfigRow{
		MerchantID:       merchantID,
		BookingStep:      nullInt(step),
		MaxBookingByStep: nullInt(maxByStep),
		TableCount:       nullInt(tableCount),
		NoonMaxHour:      nullString(noonMax),
		EveningMaxHour:   nullString(eveningMax),
	}, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
