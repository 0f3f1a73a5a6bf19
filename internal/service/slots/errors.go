package slots

import "errors"

// ErrCountFailed возвращается, когда не удалось посчитать занятость слота
var ErrCountFailed = errors.New("slots: failed to count active bookings")
