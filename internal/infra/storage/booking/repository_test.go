package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/ptr"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// recordingExecutor запоминает последний выполненный запрос
type recordingExecutor struct {
	query    string
	args     []interface{}
	affected int64
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	return driverResult(e.affected), nil
}

func (e *recordingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	panic("unexpected QueryContext")
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("unexpected QueryRowContext")
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

var cancelSchema = domain.Columns{
	{Name: colIdentifier, Category: domain.CategoryText},
	{Name: colStatus, Category: domain.CategoryText},
	{Name: colCancelled, Category: domain.CategoryBoolean},
	{Name: colUpdatedAt, Category: domain.CategoryDateTime},
}

func newRecordingRepository(columns domain.Columns, affected int64) (*Repository, *recordingExecutor) {
	exec := &recordingExecutor{affected: affected}
	repo := NewRepository(exec, time.Hour)
	repo.schema.set(columns)
	return repo, exec
}

func TestCountActiveQuery(t *testing.T) {
	repo, _ := newRecordingRepository(flagSchema, 0)
	hour, err := types.NewTimeStringFromString("19:30")
	require.NoError(t, err)

	query, args, err := repo.countActiveQuery(flagSchema, 7, "2030-06-10", hour).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM booking WHERE date = $1 AND hour = $2 AND restaurant_id = $3"+
			" AND COALESCE(annulation, 0) = 0 AND COALESCE(refuse, 0) = 0",
		query)
	assert.Equal(t, []interface{}{"2030-06-10", "19:30:00", int64(7)}, args)
}

func TestCountActiveQuery_StatusSchema(t *testing.T) {
	repo, _ := newRecordingRepository(statusSchema, 0)
	hour, err := types.NewTimeStringFromString("19:30")
	require.NoError(t, err)

	query, args, err := repo.countActiveQuery(statusSchema, 7, "2030-06-10", hour).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COUNT(*) FROM booking WHERE date = $1 AND hour = $2 AND restaurant_id = $3"+
			" AND annulation IS NOT TRUE AND (status IS NULL OR UPPER(status) NOT IN ($4,$5,$6,$7))",
		query)
	assert.Equal(t, []interface{}{"2030-06-10", "19:30", int64(7), "CANCELLED", "CANCELED", "REJECTED", "REFUSED"}, args)
}

func TestExistsQuery(t *testing.T) {
	repo, _ := newRecordingRepository(flagSchema, 0)

	query, args, err := repo.existsQuery("IDEMP_abc").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM booking WHERE guid = $1 LIMIT 1 )", query)
	assert.Equal(t, []interface{}{"IDEMP_abc"}, args)
}

func TestRepository_Update_Cancel(t *testing.T) {
	repo, exec := newRecordingRepository(cancelSchema, 1)
	updatedAt := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	err := repo.Update(context.Background(), 7, "BK_1", domain.BookingChanges{
		State:     ptr.Ptr(domain.StateCancelled),
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE booking SET annulation = $1, status = $2, updated_at = $3 WHERE guid = $4 AND restaurant_id = $5",
		exec.query)
	assert.Equal(t, []interface{}{true, "CANCELLED", updatedAt, "BK_1", int64(7)}, exec.args)
}

func TestRepository_Update_Modify(t *testing.T) {
	repo, exec := newRecordingRepository(flagSchema, 1)
	hour, err := types.NewTimeStringFromString("20:00")
	require.NoError(t, err)

	err = repo.Update(context.Background(), 7, "BK_1", domain.BookingChanges{
		Date:      ptr.Ptr("2030-06-11"),
		Time:      &hour,
		PartySize: ptr.Ptr(5),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	// без колонки updated_at время изменения не пишется
	assert.Equal(t,
		"UPDATE booking SET date = $1, hour = $2, tableware_count = $3 WHERE guid = $4 AND restaurant_id = $5",
		exec.query)
	assert.Equal(t, []interface{}{"2030-06-11", "20:00:00", 5, "BK_1", int64(7)}, exec.args)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, _ := newRecordingRepository(flagSchema, 0)

	err := repo.Update(context.Background(), 7, "BK_404", domain.BookingChanges{State: ptr.Ptr(domain.StateCancelled)})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Update_NothingToChange(t *testing.T) {
	repo, exec := newRecordingRepository(flagSchema, 0)

	err := repo.Update(context.Background(), 7, "BK_1", domain.BookingChanges{UpdatedAt: time.Now()})

	require.NoError(t, err)
	assert.Empty(t, exec.query)
}
