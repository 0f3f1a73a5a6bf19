package merchant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/psqlbuilder"
)

const tableName = "restaurant"

// Repository репозиторий ресторанов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресторанов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ResolveID возвращает внутренний ID ресторана по внешнему GUID
func (r *Repository) ResolveID(ctx context.Context, guid string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{"guid": guid}).
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ResolveID - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrMerchantNotFound
		}
		return 0, fmt.Errorf("%w: ResolveID - scan row: %v", ErrScanRow, err)
	}

	return id, nil
}
