package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus коллекторов сервиса.
// Все методы записи безопасны для nil-получателя: при выключенных метриках
// в use case'ы передается nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBConnections    *prometheus.GaugeVec
	DBWaitCountTotal *prometheus.GaugeVec

	BookingsTotal       *prometheus.CounterVec
	BookingUpdatesTotal *prometheus.CounterVec
	LookupSlotsTotal    *prometheus.CounterVec

	service string
}

// New регистрирует коллекторы в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует коллекторы в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		DBWaitCountTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_create_total",
			Help: "Booking creation attempts by outcome",
		}, []string{"service", "outcome"}),
		BookingUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_update_total",
			Help: "Booking updates by result",
		}, []string{"service", "result"}),
		LookupSlotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_lookup_slots_total",
			Help: "Slots evaluated by availability lookup, by outcome",
		}, []string{"service", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnections,
		m.DBWaitCountTotal,
		m.BookingsTotal,
		m.BookingUpdatesTotal,
		m.LookupSlotsTotal,
	)

	return m
}

// Service имя сервиса, подставляемое в лейбл service
func (m *Metrics) Service() string {
	if m == nil {
		return ""
	}
	return m.service
}

// BookingOutcome учитывает результат создания бронирования
func (m *Metrics) BookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(m.service, outcome).Inc()
}

// BookingUpdate учитывает результат изменения бронирования
func (m *Metrics) BookingUpdate(result string) {
	if m == nil {
		return
	}
	m.BookingUpdatesTotal.WithLabelValues(m.service, result).Inc()
}

// LookupSlot учитывает оцененный слот
func (m *Metrics) LookupSlot(outcome string) {
	if m == nil {
		return
	}
	m.LookupSlotsTotal.WithLabelValues(m.service, outcome).Inc()
}
