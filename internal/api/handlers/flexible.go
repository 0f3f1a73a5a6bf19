package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexibleInt целое из JSON, которое партнер может прислать числом или строкой.
// Нечисловая строка читается как 0, дробное число отбрасывает дробную часть.
// Отсутствующее поле и null оставляют Set = false
type FlexibleInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexibleInt{}
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*f = FlexibleInt{Value: truncate(v), Set: true}
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			n = 0
		}
		*f = FlexibleInt{Value: truncate(n), Set: true}
	case bool:
		*f = FlexibleInt{Set: true}
		if v {
			f.Value = 1
		}
	default:
		*f = FlexibleInt{Set: true}
	}
	return nil
}

// Ptr возвращает указатель на значение или nil, если поле не передано
func (f FlexibleInt) Ptr() *int {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// Or возвращает значение или def, если поле не передано
func (f FlexibleInt) Or(def int) int {
	if !f.Set {
		return def
	}
	return f.Value
}

func truncate(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}
