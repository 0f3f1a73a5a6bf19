package bookings

import "errors"

// ErrIDGeneration возвращается, когда не удалось получить случайные байты для идентификатора
var ErrIDGeneration = errors.New("bookings: failed to generate booking identifier")
