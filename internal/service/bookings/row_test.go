package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/ptr"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

func testRecord(t *testing.T) domain.BookingRecord {
	t.Helper()
	hour, err := types.NewTimeStringFromString("19:30")
	if err != nil {
		t.Fatal(err)
	}
	return domain.BookingRecord{
		ID:           "BK_20250610_1930_a1b2c3",
		MerchantID:   7,
		Date:         "2025-06-10",
		Time:         hour,
		PartySize:    4,
		CustomerName: "Jane Doe",
		Email:        ptr.Ptr("jane@example.com"),
		Source:       "google",
	}
}

func TestBuildRow_LegacySchema(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	columns := domain.Columns{
		{Name: "id", Category: domain.CategoryInteger, AutoGenerated: true},
		{Name: "guid", Category: domain.CategoryText},
		{Name: "restaurant_id", Category: domain.CategoryInteger},
		{Name: "date", Category: domain.CategoryDate},
		{Name: "hour", Category: domain.CategoryTime},
		{Name: "tableware_count", Category: domain.CategoryInteger},
		{Name: "name", Category: domain.CategoryText},
		{Name: "email", Category: domain.CategoryText, Nullable: true},
		{Name: "annulation", Category: domain.CategoryInteger},
		{Name: "confirmed", Category: domain.CategoryBoolean},
		{Name: "is_waiting", Category: domain.CategoryInteger, HasDefault: true},
		{Name: "table_number", Category: domain.CategoryInteger},
		{Name: "comment", Category: domain.CategoryText},
		{Name: "arrival", Category: domain.CategoryTime},
		{Name: "service_day", Category: domain.CategoryDate},
		{Name: "synced_at", Category: domain.CategoryDateTime},
		{Name: "notes", Category: domain.CategoryText, Nullable: true},
	}

	row := BuildRow(testRecord(t), columns, now)

	assert.Equal(t, map[string]interface{}{
		"guid":            "BK_20250610_1930_a1b2c3",
		"restaurant_id":   int64(7),
		"date":            "2025-06-10",
		"hour":            "19:30:00",
		"tableware_count": 4,
		"name":            "Jane Doe",
		"email":           ptr.Ptr("jane@example.com"),
		"annulation":      0,
		"confirmed":       true,
		"table_number":    0,
		"comment":         "",
		"arrival":         "19:30:00",
		"service_day":     "2025-06-10",
		"synced_at":       now,
	}, row)
}

func TestBuildRow_StatusSchema(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	columns := domain.Columns{
		{Name: "guid", Category: domain.CategoryText},
		{Name: "hour", Category: domain.CategoryText},
		{Name: "source", Category: domain.CategoryText, Nullable: true},
		{Name: "status", Category: domain.CategoryText, HasDefault: true},
		{Name: "created_at", Category: domain.CategoryDateTime},
		{Name: "updated_at", Category: domain.CategoryDateTime},
	}

	row := BuildRow(testRecord(t), columns, now)

	assert.Equal(t, map[string]interface{}{
		"guid":       "BK_20250610_1930_a1b2c3",
		"hour":       "19:30",
		"source":     "google",
		"status":     "CONFIRMED",
		"created_at": now,
		"updated_at": now,
	}, row)
}
