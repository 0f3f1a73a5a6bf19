package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	MerchantGUID   string
	ServiceID      string
	Start          string   // ISO-8601 начало слота
	Slots          []string // альтернативный источник начала слота: берется первый
	PartySize      *int     // nil - размер по умолчанию
	Customer       Customer
	IdempotencyKey string
}

// Customer данные гостя
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Response модель ответа с созданным (или повторно возвращенным) бронированием
type Response struct {
	Status    string
	ID        string
	Start     string // начало слота в формате 2006-01-02T15:04:05-0700
	PartySize int
	Replayed  bool // true, если бронирование уже существовало
}

// Options параметры, общие для всех бронирований шлюза
type Options struct {
	Location            *time.Location
	Source              string
	CountryCode         string
	DefaultCustomerName string
	DefaultPartySize    int // 0 - domain.DefaultPartySize
}
