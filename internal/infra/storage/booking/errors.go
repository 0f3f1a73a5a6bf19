package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateIdentifier возвращается, когда бронирование с таким идентификатором уже есть
	ErrDuplicateIdentifier = errors.New("booking.repository: duplicate booking identifier")

	// ErrSchema возвращается при ошибке чтения схемы таблицы
	ErrSchema = errors.New("booking.repository: failed to read table schema")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
