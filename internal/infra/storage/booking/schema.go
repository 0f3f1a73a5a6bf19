package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/psqlbuilder"
)

// schemaCache кэширует список колонок таблицы бронирований.
// При ttl <= 0 схема читается на каждый запрос
type schemaCache struct {
	mu       sync.RWMutex
	columns  domain.Columns
	loadedAt time.Time
	ttl      time.Duration
	now      func() time.Time
}

func (c *schemaCache) get() (domain.Columns, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.columns == nil || c.now().Sub(c.loadedAt) > c.ttl {
		return nil, false
	}
	return c.columns, true
}

func (c *schemaCache) set(columns domain.Columns) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.columns = columns
	c.loadedAt = c.now()
}

// Columns возвращает схему таблицы бронирований из кэша или читает ее заново
func (r *Repository) Columns(ctx context.Context) (domain.Columns, error) {
	if columns, ok := r.schema.get(); ok {
		return columns, nil
	}
	return r.loadColumns(ctx)
}

// loadColumns читает актуальную схему таблицы бронирований из information_schema
func (r *Repository) loadColumns(ctx context.Context) (domain.Columns, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"column_name",
		"data_type",
		"is_nullable",
		"column_default",
		"is_identity",
		"is_generated",
	).
		From("information_schema.columns").
		Where(squirrel.Expr("table_schema = current_schema()")).
		Where(squirrel.Eq{"table_name": r.table}).
		OrderBy("ordinal_position").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Columns - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Columns - execute select: %v", ErrSchema, err)
	}
	defer rows.Close()

	var columns domain.Columns
	for rows.Next() {
		var (
			name, dataType, nullable string
			def, identity, generated sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &nullable, &def, &identity, &generated); err != nil {
			return nil, fmt.Errorf("%w: Columns - scan row: %v", ErrScanRow, err)
		}
		columns = append(columns, domain.Column{
			Name:       name,
			Category:   domain.CategoryFromSQLType(dataType),
			Nullable:   strings.EqualFold(nullable, "YES"),
			HasDefault: def.Valid,
			AutoGenerated: strings.EqualFold(identity.String, "YES") ||
				strings.EqualFold(generated.String, "ALWAYS") ||
				strings.HasPrefix(def.String, "nextval("),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Columns - iterate rows: %v", ErrSchema, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns", ErrSchema, r.table)
	}

	r.schema.set(columns)
	return columns, nil
}
