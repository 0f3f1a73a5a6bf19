package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

type stubSettings struct {
	cfg domain.MerchantConfig
}

func (s stubSettings) Resolve(context.Context, int64) domain.MerchantConfig {
	return s.cfg
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) CountActive(ctx context.Context, merchantID int64, date string, hour types.TimeString) (int, error) {
	args := m.Called(ctx, merchantID, date, hour.String())
	return args.Int(0), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newEngine(t *testing.T, cfg domain.MerchantConfig, counter BookingCounter, now time.Time) *Engine {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	e := NewEngine(stubSettings{cfg: cfg}, counter, loc, logger.NewNop())
	e.timeProvider = fixedTime{t: now}
	return e
}

func TestEngine_CapacityFor(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	now := time.Date(2025, 6, 10, 9, 0, 0, 0, loc)
	today := func(h, m int) time.Time { return time.Date(2025, 6, 10, h, m, 0, 0, loc) }
	tomorrow := func(h, m int) time.Time { return time.Date(2025, 6, 11, h, m, 0, 0, loc) }

	withCutoffs := domain.DefaultMerchantConfig()
	withCutoffs.NoonCutoff = mustTime(t, "11:30")
	withCutoffs.EveningCutoff = mustTime(t, "18:00")

	tests := []struct {
		name      string
		cfg       domain.MerchantConfig
		serviceID string
		start     time.Time
		count     int
		countErr  error
		noCount   bool
		want      int
		wantErr   bool
	}{
		{name: "free slot", cfg: domain.DefaultMerchantConfig(), serviceID: "m:noon", start: tomorrow(12, 0), count: 2, want: 4},
		{name: "full slot clamps at zero", cfg: domain.DefaultMerchantConfig(), serviceID: "m:noon", start: tomorrow(12, 0), count: 9, want: 0},
		{name: "noon cutoff reached today", cfg: withCutoffs, serviceID: "m:noon", start: today(11, 30), noCount: true, want: 0},
		{name: "before noon cutoff today", cfg: withCutoffs, serviceID: "m:noon", start: today(11, 15), count: 1, want: 5},
		{name: "evening cutoff reached today", cfg: withCutoffs, serviceID: "m:EVENING", start: today(19, 0), noCount: true, want: 0},
		{name: "unknown period uses noon cutoff", cfg: withCutoffs, serviceID: "m:brunch", start: today(12, 0), noCount: true, want: 0},
		{name: "cutoff ignored on other days", cfg: withCutoffs, serviceID: "m:evening", start: tomorrow(19, 0), count: 0, want: 6},
		{name: "count failure", cfg: domain.DefaultMerchantConfig(), serviceID: "m:noon", start: tomorrow(12, 0), countErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := &mockCounter{}
			if !tt.noCount {
				counter.On("CountActive", mock.Anything, int64(1), tt.start.Format(domain.DateFormat), tt.start.Format(domain.TimeFormat)).
					Return(tt.count, tt.countErr)
			}

			e := newEngine(t, tt.cfg, counter, now)
			got, err := e.CapacityFor(context.Background(), 1, tt.serviceID, tt.start)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCountFailed)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			counter.AssertExpectations(t)
			if tt.noCount {
				counter.AssertNotCalled(t, "CountActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEngine_CapacityFor_UsesStartOffset(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC on the 9th is already the 10th in Paris; the slot keeps its own offset
	start := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)

	counter := &mockCounter{}
	counter.On("CountActive", mock.Anything, int64(1), "2025-06-09", "23:30").Return(0, nil)

	e := newEngine(t, domain.DefaultMerchantConfig(), counter, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	got, err := e.CapacityFor(context.Background(), 1, "m:evening", start)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCapacityPerStep, got)
	counter.AssertExpectations(t)
}

func TestEngine_RoundToStep(t *testing.T) {
	cfg := domain.DefaultMerchantConfig()
	cfg.StepMinutes = 15
	e := newEngine(t, cfg, &mockCounter{}, time.Now())

	start := time.Date(2025, 6, 10, 12, 44, 30, 0, time.UTC)
	got := e.RoundToStep(context.Background(), 1, start)

	assert.Equal(t, time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC), got)
}
