package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/booking"
	merchantRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/merchant"
	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
	"github.com/m04kA/SMC-ReservationGateway/pkg/metrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/ptr"
)

const (
	guid      = "merchant-guid"
	serviceID = guid + ":evening"
	startRaw  = "2025-06-10T19:30:00+02:00"
)

type mockMerchantRepo struct{ mock.Mock }

func (m *mockMerchantRepo) ResolveID(ctx context.Context, guid string) (int64, error) {
	args := m.Called(ctx, guid)
	return args.Get(0).(int64), args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) CapacityFor(ctx context.Context, merchantID int64, serviceID string, start time.Time) (int, error) {
	args := m.Called(ctx, merchantID, serviceID, start.Format(time.RFC3339))
	return args.Int(0), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ExistsByIdentifier(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) Columns(ctx context.Context) (domain.Columns, error) {
	args := m.Called(ctx)
	cols, _ := args.Get(0).(domain.Columns)
	return cols, args.Error(1)
}

func (m *mockBookingRepo) Insert(ctx context.Context, row map[string]interface{}) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

type mockIDGenerator struct{ mock.Mock }

func (m *mockIDGenerator) NewID(start time.Time) (string, error) {
	args := m.Called(start.Format(time.RFC3339))
	return args.String(0), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var schema = domain.Columns{
	{Name: "guid", Category: domain.CategoryText},
	{Name: "restaurant_id", Category: domain.CategoryInteger},
	{Name: "date", Category: domain.CategoryDate},
	{Name: "hour", Category: domain.CategoryText},
	{Name: "tableware_count", Category: domain.CategoryInteger},
	{Name: "name", Category: domain.CategoryText},
	{Name: "email", Category: domain.CategoryText, Nullable: true},
	{Name: "phone_number", Category: domain.CategoryText, Nullable: true},
	{Name: "source", Category: domain.CategoryText, Nullable: true},
	{Name: "annulation", Category: domain.CategoryInteger},
}

type fixture struct {
	merchants *mockMerchantRepo
	engine    *mockEngine
	bookings  *mockBookingRepo
	ids       *mockIDGenerator
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	f := &fixture{
		merchants: &mockMerchantRepo{},
		engine:    &mockEngine{},
		bookings:  &mockBookingRepo{},
		ids:       &mockIDGenerator{},
	}
	f.uc = NewUseCase(f.merchants, f.engine, f.bookings, f.ids, Options{
		Location:            loc,
		Source:              "google",
		CountryCode:         "33",
		DefaultCustomerName: "Client Google",
	}, (*metrics.Metrics)(nil), logger.NewNop())
	f.uc.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}

	f.merchants.On("ResolveID", mock.Anything, guid).Return(int64(7), nil).Maybe()
	return f
}

func baseRequest() *Request {
	return &Request{
		MerchantGUID: guid,
		ServiceID:    serviceID,
		Start:        startRaw,
		PartySize:    ptr.Ptr(4),
		Customer: Customer{
			FirstName: " Jane ",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Phone:     "06 12 34 56 78",
		},
	}
}

func TestUseCase_Execute_CreatesBooking(t *testing.T) {
	f := newFixture(t)
	f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(6, nil)
	f.ids.On("NewID", startRaw).Return("BK_20250610_1930_a1b2c3", nil)
	f.bookings.On("Columns", mock.Anything).Return(schema, nil)

	var inserted map[string]interface{}
	f.bookings.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(map[string]interface{}) }).
		Return(nil)

	resp, err := f.uc.Execute(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.Equal(t, &Response{
		Status:    "OK",
		ID:        "BK_20250610_1930_a1b2c3",
		Start:     "2025-06-10T19:30:00+0200",
		PartySize: 4,
	}, resp)

	assert.Equal(t, "BK_20250610_1930_a1b2c3", inserted["guid"])
	assert.Equal(t, int64(7), inserted["restaurant_id"])
	assert.Equal(t, "2025-06-10", inserted["date"])
	assert.Equal(t, "19:30", inserted["hour"])
	assert.Equal(t, 4, inserted["tableware_count"])
	assert.Equal(t, "Jane Doe", inserted["name"])
	assert.Equal(t, ptr.Ptr("+33612345678"), inserted["phone_number"])
	assert.Equal(t, "google", inserted["source"])
	assert.Equal(t, 0, inserted["annulation"])
	f.bookings.AssertNotCalled(t, "ExistsByIdentifier", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_IdempotentReplaySkipsCapacity(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("ExistsByIdentifier", mock.Anything, mock.MatchedBy(func(id string) bool {
		return strings.HasPrefix(id, domain.IdempotentIDPrefix)
	})).Return(true, nil)

	req := baseRequest()
	req.IdempotencyKey = "retry-42"

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Replayed)
	assert.True(t, strings.HasPrefix(resp.ID, domain.IdempotentIDPrefix))
	assert.Equal(t, "2025-06-10T19:30:00+0200", resp.Start)
	f.engine.AssertNotCalled(t, "CapacityFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_IdempotentFirstCall(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("ExistsByIdentifier", mock.Anything, mock.Anything).Return(false, nil)
	f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(6, nil)
	f.bookings.On("Columns", mock.Anything).Return(schema, nil)
	f.bookings.On("Insert", mock.Anything, mock.Anything).Return(nil)

	req := baseRequest()
	req.IdempotencyKey = "retry-42"

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)
	assert.Regexp(t, `^IDEMP_[0-9a-f]{20}$`, first.ID)

	// same request with a different email case derives the same identifier
	req.Customer.Email = "JANE@example.com"
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	f.ids.AssertNotCalled(t, "NewID", mock.Anything)
}

func TestUseCase_Execute_RandomIDCollisionIsReplay(t *testing.T) {
	f := newFixture(t)
	f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(6, nil)
	f.ids.On("NewID", startRaw).Return("BK_20250610_1930_ffffff", nil)
	f.bookings.On("Columns", mock.Anything).Return(schema, nil)
	f.bookings.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	f.bookings.On("Insert", mock.Anything, mock.Anything).Return(bookingRepo.ErrDuplicateIdentifier).Once()

	first, err := f.uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := f.uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.ID, second.ID)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Request)
		setup    func(*fixture)
		wantErr  error
		wantKind domain.ErrorKind
	}{
		{
			name:   "merchant not found",
			mutate: func(r *Request) { r.MerchantGUID = "ghost" },
			setup: func(f *fixture) {
				f.merchants.On("ResolveID", mock.Anything, "ghost").Return(int64(0), merchantRepo.ErrMerchantNotFound)
			},
			wantErr:  ErrMerchantNotFound,
			wantKind: domain.KindNotFound,
		},
		{
			name: "missing start",
			mutate: func(r *Request) {
				r.Start = ""
				r.Slots = nil
			},
			wantErr:  ErrMissingStart,
			wantKind: domain.KindValidation,
		},
		{
			name:     "invalid start",
			mutate:   func(r *Request) { r.Start = "next friday" },
			wantErr:  ErrInvalidStart,
			wantKind: domain.KindValidation,
		},
		{
			name: "slot full",
			setup: func(f *fixture) {
				f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(0, nil)
			},
			wantErr:  ErrSlotUnavailable,
			wantKind: domain.KindConflict,
		},
		{
			name: "party exceeds capacity",
			setup: func(f *fixture) {
				f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(3, nil)
			},
			wantErr:  ErrPartyExceedsCapacity,
			wantKind: domain.KindConflict,
		},
		{
			name: "capacity lookup fails",
			setup: func(f *fixture) {
				f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(0, errors.New("db down"))
			},
			wantErr:  ErrInternal,
			wantKind: domain.KindPersistence,
		},
		{
			name: "insert fails",
			setup: func(f *fixture) {
				f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, startRaw).Return(6, nil)
				f.ids.On("NewID", startRaw).Return("BK_20250610_1930_000000", nil)
				f.bookings.On("Columns", mock.Anything).Return(schema, nil)
				f.bookings.On("Insert", mock.Anything, mock.Anything).Return(errors.New("not-null violation"))
			},
			wantErr:  ErrInternal,
			wantKind: domain.KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			req := baseRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			resp, err := f.uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			if tt.wantKind != domain.KindPersistence {
				f.bookings.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUseCase_Execute_StartFromSlotsAndDefaults(t *testing.T) {
	f := newFixture(t)
	f.engine.On("CapacityFor", mock.Anything, int64(7), serviceID, "2025-06-10T12:00:00+02:00").Return(6, nil)
	f.ids.On("NewID", "2025-06-10T12:00:00+02:00").Return("BK_20250610_1200_abcdef", nil)
	f.bookings.On("Columns", mock.Anything).Return(schema, nil)

	var inserted map[string]interface{}
	f.bookings.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(map[string]interface{}) }).
		Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		MerchantGUID: guid,
		ServiceID:    serviceID,
		Slots:        []string{"2025-06-10T12:00:00", "2025-06-10T12:15:00"},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPartySize, resp.PartySize)
	assert.Equal(t, "2025-06-10T12:00:00+0200", resp.Start)
	assert.Equal(t, "Client Google", inserted["name"])
	assert.Nil(t, inserted["email"])
}

func TestResolvePartySize(t *testing.T) {
	assert.Equal(t, 2, resolvePartySize(nil, 2))
	assert.Equal(t, 4, resolvePartySize(nil, 4))
	assert.Equal(t, 1, resolvePartySize(ptr.Ptr(0), 2))
	assert.Equal(t, 1, resolvePartySize(ptr.Ptr(-3), 2))
	assert.Equal(t, 8, resolvePartySize(ptr.Ptr(8), 2))
}
