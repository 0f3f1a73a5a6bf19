package availability_lookup

import "time"

// Request модель запроса доступности слотов
type Request struct {
	MerchantGUID string
	ServiceID    string   // "<merchantGUID>:noon" или "<merchantGUID>:evening"
	Starts       []string // ISO-8601 начала слотов в том виде, в каком их прислал партнер
	PartySize    int
}

// Response модель ответа
type Response struct {
	Results []SlotCapacity
}

// SlotCapacity оставшаяся вместимость одного запрошенного слота
type SlotCapacity struct {
	Start    string // исходная строка запроса
	Capacity int
}

// Options включаемые вручную особенности поиска
type Options struct {
	Location          *time.Location // часовой пояс для времени без смещения
	RoundToStep       bool           // округлять начало слота вниз до шага ресторана
	FilterByPartySize bool           // слот меньше размера группы отдается с нулевой вместимостью
}
