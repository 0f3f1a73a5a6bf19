package booking

import (
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

const (
	colStatus     = "status"
	colCancelled  = "annulation"
	colRejected   = "refuse"
	colUpdatedAt  = "updated_at"
	colIdentifier = "guid"
	colMerchant   = "restaurant_id"
	colDate       = "date"
	colHour       = "hour"
	colPartySize  = "tableware_count"
)

var (
	cancelledLabels = []string{"CANCELLED", "CANCELED"}
	rejectedLabels  = []string{"REJECTED", "REFUSED"}
)

// activePredicates условия "не отменено и не отклонено" для доступных в схеме колонок.
// Флаги хранятся как 0/1 либо как boolean, NULL считается "нет"
func activePredicates(columns domain.Columns) []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	for _, name := range []string{colCancelled, colRejected} {
		col, ok := columns.Find(name)
		if !ok {
			continue
		}
		if col.Category == domain.CategoryBoolean {
			preds = append(preds, squirrel.Expr(name+" IS NOT TRUE"))
		} else {
			preds = append(preds, squirrel.Expr("COALESCE("+name+", 0) = 0"))
		}
	}

	if columns.Has(colStatus) {
		inactive := append(append([]string{}, cancelledLabels...), rejectedLabels...)
		preds = append(preds, squirrel.Or{
			squirrel.Eq{colStatus: nil},
			squirrel.NotEq{"UPPER(" + colStatus + ")": inactive},
		})
	}

	return preds
}

// encodeState значения колонок для перевода бронирования в состояние state
func encodeState(columns domain.Columns, state domain.BookingState) map[string]interface{} {
	values := make(map[string]interface{})

	if columns.Has(colStatus) {
		values[colStatus] = string(state)
	}
	if col, ok := columns.Find(colCancelled); ok {
		values[colCancelled] = flagValue(col, state == domain.StateCancelled)
	}
	if col, ok := columns.Find(colRejected); ok && state == domain.StateRejected {
		values[colRejected] = flagValue(col, true)
	}

	return values
}

// decodeState восстанавливает состояние по значениям строки
func decodeState(row map[string]interface{}) domain.BookingState {
	if truthy(row[colCancelled]) {
		return domain.StateCancelled
	}
	if truthy(row[colRejected]) {
		return domain.StateRejected
	}

	status := strings.ToUpper(asString(row[colStatus]))
	for _, l := range cancelledLabels {
		if status == l {
			return domain.StateCancelled
		}
	}
	for _, l := range rejectedLabels {
		if status == l {
			return domain.StateRejected
		}
	}
	return domain.StateConfirmed
}

func flagValue(col domain.Column, on bool) interface{} {
	if col.Category == domain.CategoryBoolean {
		return on
	}
	if on {
		return 1
	}
	return 0
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case int:
		return x != 0
	case []byte:
		return truthyString(string(x))
	case string:
		return truthyString(x)
	default:
		return false
	}
}

func truthyString(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "t" || s == "true" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n != 0
}
