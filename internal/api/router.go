package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationGateway/pkg/metrics"
)

const (
	// PathPrefix общий префикс API партнера
	PathPrefix = "/google"
	// HealthPath публичная проверка живости
	HealthPath = PathPrefix + "/health"
)

// Handler обработчик одного маршрута
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Handlers обработчики API партнера
type Handlers struct {
	Health             Handler
	AvailabilityLookup Handler
	CreateBooking      Handler
	UpdateBooking      Handler
}

// RouterOptions сквозные параметры роутера
type RouterOptions struct {
	Auth        middleware.AuthConfig
	RateLimiter *middleware.RateLimiter // nil - без ограничения частоты
	Metrics     *metrics.Metrics        // nil - без метрик
	MetricsPath string
}

// NewRouter собирает маршруты и middleware
func NewRouter(h Handlers, opts RouterOptions, logger middleware.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Метрики (публичный эндпоинт, без аутентификации)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics, opts.Metrics.Service()))
		if opts.MetricsPath != "" {
			r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		}
	}

	// Маршруты партнера регистрируются полным путем на корневом роутере:
	// у PathPrefix-саброутера несовпадение метода превращается в 404
	auth := opts.Auth
	auth.PublicPath = append(auth.PublicPath, HealthPath)
	chain := []mux.MiddlewareFunc{middleware.Auth(auth, logger)}
	if opts.RateLimiter != nil {
		chain = append(chain, opts.RateLimiter.Middleware(logger))
	}
	google := func(h Handler) http.Handler {
		var next http.Handler = http.HandlerFunc(h.Handle)
		for i := len(chain) - 1; i >= 0; i-- {
			next = chain[i](next)
		}
		return next
	}

	r.Handle(HealthPath, google(h.Health)).Methods(http.MethodGet)
	r.Handle(PathPrefix+"/availability-lookup", google(h.AvailabilityLookup)).Methods(http.MethodPost)
	r.Handle(PathPrefix+"/create-booking", google(h.CreateBooking)).Methods(http.MethodPost)
	r.Handle(PathPrefix+"/update-booking", google(h.UpdateBooking)).Methods(http.MethodPost)

	return r
}
