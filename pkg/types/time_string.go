package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается, когда строка не в формате HH:MM
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrTimeOverflow возвращается, когда AddMinutes выходит за пределы суток
	ErrTimeOverflow = errors.New("types: time out of day bounds")

	hhmmPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

const minutesPerDay = 24 * 60

// TimeString время суток с точностью до минуты ("HH:MM").
// Нулевое значение означает отсутствие времени
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString берет часы и минуты из t
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromString разбирает строку строго в формате HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	if !hhmmPattern.MatchString(s) {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{minutes: h*60 + m, valid: true}, nil
}

// ParseTimeString принимает HH:MM и HH:MM:SS (секунды отбрасываются)
func ParseTimeString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == 8 && s[5] == ':' {
		s = s[:5]
	}
	return NewTimeStringFromString(s)
}

func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	return nil
}

// Minutes количество минут от начала суток
func (t TimeString) Minutes() int {
	return t.minutes
}

// String возвращает HH:MM или пустую строку для нулевого значения
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// WithSeconds возвращает HH:MM:00 для колонок типа time
func (t TimeString) WithSeconds() string {
	if !t.valid {
		return ""
	}
	return t.String() + ":00"
}

// AddMinutes сдвигает время в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total := t.minutes + minutes
	if total < 0 || total >= minutesPerDay {
		return TimeString{}, ErrTimeOverflow
	}
	return TimeString{minutes: total, valid: true}, nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case string:
		parsed, err := ParseTimeString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

// MarshalText выводит HH:MM
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText принимает HH:MM, пустая строка дает нулевое значение
func (t *TimeString) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
