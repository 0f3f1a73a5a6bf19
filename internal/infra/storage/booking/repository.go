package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

const (
	defaultTableName = "booking"

	// pqUniqueViolation код ошибки PostgreSQL для нарушения уникальности
	pqUniqueViolation = "23505"
)

// Repository репозиторий бронирований.
// Таблица принадлежит основному приложению ресторана, поэтому набор колонок
// не фиксирован: запись и фильтры строятся по схеме, прочитанной в рантайме
type Repository struct {
	db     DBExecutor
	table  string
	schema *schemaCache
}

// NewRepository создает новый экземпляр репозитория бронирований.
// schemaTTL задает время жизни закэшированной схемы таблицы
func NewRepository(db DBExecutor, schemaTTL time.Duration) *Repository {
	return &Repository{
		db:     db,
		table:  defaultTableName,
		schema: &schemaCache{ttl: schemaTTL, now: time.Now},
	}
}

// CountActive считает активные бронирования ресторана на дату и время слота
func (r *Repository) CountActive(ctx context.Context, merchantID int64, date string, hour types.TimeString) (int, error) {
	columns, err := r.Columns(ctx)
	if err != nil {
		return 0, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.countActiveQuery(columns, merchantID, date, hour).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan row: %v", ErrScanRow, err)
	}

	return count, nil
}

// countActiveQuery считает места без отмененных и отклоненных бронирований
func (r *Repository) countActiveQuery(columns domain.Columns, merchantID int64, date string, hour types.TimeString) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("COUNT(*)").
		From(r.table).
		Where(squirrel.Eq{
			colMerchant: merchantID,
			colDate:     date,
			colHour:     hourValue(columns, hour),
		})
	for _, pred := range activePredicates(columns) {
		builder = builder.Where(pred)
	}
	return builder
}

// FindByIdentifier ищет бронирование ресторана по идентификатору.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) FindByIdentifier(ctx context.Context, merchantID int64, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("*").
		From(r.table).
		Where(squirrel.Eq{colIdentifier: id, colMerchant: merchantID}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentifier - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentifier - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: FindByIdentifier - iterate rows: %v", ErrExecQuery, err)
		}
		return nil, ErrBookingNotFound
	}

	row, err := scanRowMap(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentifier - scan row: %v", ErrScanRow, err)
	}

	booking, err := rowToBooking(row)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByIdentifier - %v", ErrScanRow, err)
	}

	return booking, nil
}

// ExistsByIdentifier проверяет, есть ли бронирование с таким идентификатором (в любом ресторане)
func (r *Repository) ExistsByIdentifier(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.existsQuery(id).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByIdentifier - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByIdentifier - scan row: %v", ErrScanRow, err)
	}

	return exists, nil
}

func (r *Repository) existsQuery(id string) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		From(r.table).
		Where(squirrel.Eq{colIdentifier: id}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")")
}

// Insert вставляет строку, уже приведенную к схеме таблицы.
// Нарушение уникальности идентификатора возвращается как ErrDuplicateIdentifier
func (r *Repository) Insert(ctx context.Context, row map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(r.table).
		SetMap(row).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateIdentifier(err) {
			return ErrDuplicateIdentifier
		}
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Update применяет частичное изменение бронирования
func (r *Repository) Update(ctx context.Context, merchantID int64, id string, changes domain.BookingChanges) error {
	columns, err := r.Columns(ctx)
	if err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	set := updateSet(columns, changes)
	if len(set) == 0 {
		return nil
	}

	query, args, err := psqlbuilder.Update(r.table).
		SetMap(set).
		Where(squirrel.Eq{colIdentifier: id, colMerchant: merchantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// updateSet значения SET для частичного изменения в терминах колонок схемы
func updateSet(columns domain.Columns, changes domain.BookingChanges) map[string]interface{} {
	set := make(map[string]interface{})
	if changes.State != nil {
		for k, v := range encodeState(columns, *changes.State) {
			set[k] = v
		}
	}
	if changes.Date != nil {
		set[colDate] = *changes.Date
	}
	if changes.Time != nil {
		set[colHour] = hourValue(columns, *changes.Time)
	}
	if changes.PartySize != nil {
		set[colPartySize] = *changes.PartySize
	}
	if columns.Has(colUpdatedAt) && !changes.UpdatedAt.IsZero() {
		set[colUpdatedAt] = changes.UpdatedAt
	}
	return set
}

// hourValue время слота в формате колонки hour: HH:MM:SS для time, иначе HH:MM
func hourValue(columns domain.Columns, hour types.TimeString) string {
	if col, ok := columns.Find(colHour); ok && col.Category == domain.CategoryTime {
		return hour.WithSeconds()
	}
	return hour.String()
}

func isDuplicateIdentifier(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return false
	}
	// Нарушение другого уникального индекса дубликатом бронирования не считается
	return pqErr.Constraint == "" || strings.Contains(pqErr.Constraint, colIdentifier)
}
