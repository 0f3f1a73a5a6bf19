package bookings

import (
	"time"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

// Смысловые колонки таблицы бронирований
const (
	colIdentifier = "guid"
	colMerchant   = "restaurant_id"
	colDate       = "date"
	colHour       = "hour"
	colPartySize  = "tableware_count"
	colName       = "name"
	colEmail      = "email"
	colPhone      = "phone_number"
	colSource     = "source"
	colStatus     = "status"
	colCreatedAt  = "created_at"
	colUpdatedAt  = "updated_at"
)

// businessDefaults значения обязательных колонок-флагов основного приложения
var businessDefaults = map[string]int{
	"sending_sms": 0,
	"remind_sms":  0,
	"annulation":  0,
	"refuse":      0,
	"is_waiting":  0,
	"confirmed":   1,
}

type fillContext struct {
	record domain.BookingRecord
	now    time.Time
}

// categoryFillers значения для прочих обязательных колонок по их категории
var categoryFillers = map[domain.ColumnCategory]func(fillContext) interface{}{
	domain.CategoryInteger:  func(fillContext) interface{} { return 0 },
	domain.CategoryDecimal:  func(fillContext) interface{} { return 0 },
	domain.CategoryBoolean:  func(fillContext) interface{} { return false },
	domain.CategoryTime:     func(c fillContext) interface{} { return c.record.Time.WithSeconds() },
	domain.CategoryDate:     func(c fillContext) interface{} { return c.record.Date },
	domain.CategoryDateTime: func(c fillContext) interface{} { return c.now },
	domain.CategoryText:     func(fillContext) interface{} { return "" },
}

// BuildRow приводит новое бронирование к схеме таблицы:
// заполняет смысловые колонки, затем обязательные колонки без значения
// и отбрасывает все, чего в таблице нет. now пишется в created_at/updated_at
func BuildRow(record domain.BookingRecord, columns domain.Columns, now time.Time) map[string]interface{} {
	data := map[string]interface{}{
		colIdentifier: record.ID,
		colMerchant:   record.MerchantID,
		colDate:       record.Date,
		colHour:       record.Time.String(),
		colPartySize:  record.PartySize,
		colName:       record.CustomerName,
		colEmail:      record.Email,
		colPhone:      record.Phone,
	}

	if col, ok := columns.Find(colHour); ok && col.Category == domain.CategoryTime {
		data[colHour] = record.Time.WithSeconds()
	}
	if columns.Has(colSource) {
		data[colSource] = record.Source
	}
	if columns.Has(colStatus) {
		data[colStatus] = string(domain.StateConfirmed)
	}
	if columns.Has(colCreatedAt) {
		data[colCreatedAt] = now
	}
	if columns.Has(colUpdatedAt) {
		data[colUpdatedAt] = now
	}

	fc := fillContext{record: record, now: now}
	for _, col := range columns {
		if _, ok := data[col.Name]; ok || !col.RequiresValue() {
			continue
		}
		if v, ok := businessDefaults[col.Name]; ok {
			data[col.Name] = flagValue(col, v)
			continue
		}
		if fill, ok := categoryFillers[col.Category]; ok {
			data[col.Name] = fill(fc)
		}
	}

	row := make(map[string]interface{}, len(columns))
	for _, col := range columns {
		if v, ok := data[col.Name]; ok {
			row[col.Name] = v
		}
	}
	return row
}

func flagValue(col domain.Column, v int) interface{} {
	if col.Category == domain.CategoryBoolean {
		return v != 0
	}
	return v
}
