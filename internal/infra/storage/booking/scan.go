package booking

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/pkg/types"
)

// scanRowMap читает одну строку с произвольным набором колонок в map
func scanRowMap(rows *sql.Rows) (map[string]interface{}, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(names))
	pointers := make([]interface{}, len(names))
	for i := range values {
		pointers[i] = &values[i]
	}

	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	row := make(map[string]interface{}, len(names))
	for i, name := range names {
		row[name] = values[i]
	}
	return row, nil
}

// rowToBooking переводит строку таблицы в доменную модель
func rowToBooking(row map[string]interface{}) (*domain.Booking, error) {
	b := &domain.Booking{
		ID:           asString(row[colIdentifier]),
		MerchantID:   asInt64(row[colMerchant]),
		Date:         asDate(row[colDate]),
		PartySize:    int(asInt64(row[colPartySize])),
		State:        decodeState(row),
		CustomerName: asString(row["name"]),
		Email:        asNullableString(row["email"]),
		Phone:        asNullableString(row["phone_number"]),
		Source:       asString(row["source"]),
		CreatedAt:    asNullableTime(row["created_at"]),
		UpdatedAt:    asNullableTime(row[colUpdatedAt]),
	}

	var hour types.TimeString
	if err := hour.Scan(row[colHour]); err != nil {
		return nil, fmt.Errorf("booking %s: hour: %w", b.ID, err)
	}
	b.Time = hour

	return b, nil
}

func asString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(domain.DateTimeFormat)
	default:
		return fmt.Sprint(x)
	}
}

func asNullableString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	return &s
}

func asInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case []byte:
		n, _ := strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n
	default:
		return 0
	}
}

func asDate(v interface{}) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(domain.DateFormat)
	}
	s := asString(v)
	if len(s) > len(domain.DateFormat) {
		return s[:len(domain.DateFormat)]
	}
	return s
}

func asNullableTime(v interface{}) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}
