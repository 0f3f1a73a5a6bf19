package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationGateway/internal/api"
	availabilityLookupHandler "github.com/m04kA/SMC-ReservationGateway/internal/api/handlers/availability_lookup"
	createBookingHandler "github.com/m04kA/SMC-ReservationGateway/internal/api/handlers/create_booking"
	healthHandler "github.com/m04kA/SMC-ReservationGateway/internal/api/handlers/health"
	updateBookingHandler "github.com/m04kA/SMC-ReservationGateway/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-ReservationGateway/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationGateway/internal/config"
	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
	"github.com/m04kA/SMC-ReservationGateway/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/config"
	merchantRepo "github.com/m04kA/SMC-ReservationGateway/internal/infra/storage/merchant"
	bookingsService "github.com/m04kA/SMC-ReservationGateway/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-ReservationGateway/internal/service/settings"
	slotsService "github.com/m04kA/SMC-ReservationGateway/internal/service/slots"
	availabilityLookupUC "github.com/m04kA/SMC-ReservationGateway/internal/usecase/availability_lookup"
	createBookingUC "github.com/m04kA/SMC-ReservationGateway/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-ReservationGateway/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
	"github.com/m04kA/SMC-ReservationGateway/pkg/metrics"
	"github.com/m04kA/SMC-ReservationGateway/pkg/txmanager"
)

// Источники ресторанов и их конфигурации: репозиторий или кеш поверх него
type (
	merchantResolver interface {
		ResolveID(ctx context.Context, guid string) (int64, error)
	}
	configReader interface {
		GetByMerchant(ctx context.Context, merchantID int64) (*domain.MerchantConfigRow, error)
	}
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath, migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before starting")

	return cmd
}

func serve(ctx context.Context, configPath string, migrateUp bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting reservation-gateway %s...", Version)
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateUp {
		if err := runMigrations(ctx, cfg, log); err != nil {
			return err
		}
	}

	// Обертка с метриками; без метрик работает как обычное соединение
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, cfg.Booking.SchemaCacheTTL())
	var (
		merchants merchantResolver = merchantRepo.NewRepository(wrappedDB)
		configs   configReader     = configRepo.NewRepository(wrappedDB)
	)

	// Кеш ресторанов и конфигураций (если настроен Redis)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis %s is unavailable, requests will fall back to database: %v", cfg.Redis.Addr, err)
		}
		merchants = cache.NewMerchantCache(merchants, rdb, cfg.Redis.TTL(), log)
		configs = cache.NewConfigCache(configs, rdb, cfg.Redis.TTL(), log)
		log.Info("Redis cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	location := cfg.Booking.Location()

	// Инициализируем сервисы
	settings := settingsService.NewService(configs, log)
	engine := slotsService.NewEngine(settings, bookingRepository, location, log)

	// Инициализируем use cases
	availabilityLookupUseCase := availabilityLookupUC.NewUseCase(
		merchants,
		engine,
		availabilityLookupUC.Options{
			Location:          location,
			RoundToStep:       cfg.Booking.RoundToStep,
			FilterByPartySize: cfg.Booking.FilterByPartySize,
		},
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		merchants,
		engine,
		bookingRepository,
		bookingsService.NewRandomIDGenerator(),
		createBookingUC.Options{
			Location:            location,
			Source:              cfg.Booking.Source,
			CountryCode:         cfg.Booking.CountryCode,
			DefaultCustomerName: cfg.Booking.DefaultCustomerName,
			DefaultPartySize:    cfg.Booking.DefaultPartySize,
		},
		metricsCollector,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		merchants,
		bookingRepository,
		engine,
		txMgr,
		updateBookingUC.Options{Location: location},
		metricsCollector,
		log,
	)

	// Ограничение частоты запросов (если включено)
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTimeoutSeconds)*time.Second,
		)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Настраиваем роутер
	router := api.NewRouter(api.Handlers{
		Health:             healthHandler.NewHandler(location, nil),
		AvailabilityLookup: availabilityLookupHandler.NewHandler(availabilityLookupUseCase, cfg.Booking.DefaultPartySize, log),
		CreateBooking:      createBookingHandler.NewHandler(createBookingUseCase, log),
		UpdateBooking:      updateBookingHandler.NewHandler(updateBookingUseCase, log),
	}, api.RouterOptions{
		Auth: middleware.AuthConfig{
			APIKey:     cfg.Auth.APIKey,
			HMACSecret: cfg.Auth.HMACSecret,
		},
		RateLimiter: limiter,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
	}, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
