package update_booking

import "time"

// Request модель запроса на изменение бронирования
type Request struct {
	MerchantGUID string
	BookingID    string
	Action       string // CANCEL или MODIFY, регистр не важен
	NewStart     string // ISO-8601, только для MODIFY
	NewPartySize *int   // только для MODIFY, nil - оставить текущий
}

// Response модель ответа
type Response struct {
	Status    string
	BookingID string
	Result    string
	Start     string // новое начало слота, только для MODIFY
	PartySize *int   // новый размер группы, только для MODIFY
}

// Options параметры use case
type Options struct {
	Location *time.Location
}
