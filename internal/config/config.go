package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrParseConfig   = errors.New("config: failed to parse config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Booking   BookingConfig   `toml:"booking"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig параметры логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кеш ресторанов и их конфигурации. Пустой адрес выключает кеш
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// Enabled true, если кеш настроен
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// TTL время жизни записи кеша
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// AuthConfig ключ партнера и секрет подписи
type AuthConfig struct {
	APIKey     string `toml:"api_key"`
	HMACSecret string `toml:"hmac_secret"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled            bool    `toml:"enabled"`
	RequestsPerSecond  float64 `toml:"requests_per_second"`
	Burst              int     `toml:"burst"`
	IdleTimeoutSeconds int     `toml:"idle_timeout_seconds"`
}

// BookingConfig параметры бронирований шлюза
type BookingConfig struct {
	Timezone              string `toml:"timezone"`
	Source                string `toml:"source"`
	CountryCode           string `toml:"country_code"`
	DefaultPartySize      int    `toml:"default_party_size"`
	DefaultCustomerName   string `toml:"default_customer_name"`
	RoundToStep           bool   `toml:"round_to_step"`
	FilterByPartySize     bool   `toml:"filter_by_party_size"`
	SchemaCacheTTLSeconds int    `toml:"schema_cache_ttl_seconds"`
}

// Location часовой пояс ресторанов. Вызывать после Validate
func (c BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SchemaCacheTTL время жизни кеша схемы таблицы бронирований
func (c BookingConfig) SchemaCacheTTL() time.Duration {
	return time.Duration(c.SchemaCacheTTLSeconds) * time.Second
}

// Load читает .env (если есть) и TOML файл, подставляет ${VAR} из окружения,
// применяет переопределения из окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// 1. .env не обязателен
	_ = godotenv.Load()

	// 2. Файл конфигурации
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg, err := Parse(os.ExpandEnv(string(data)))
	if err != nil {
		return nil, err
	}

	// 3. Переопределения из окружения
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает TOML без окружения и значений по умолчанию
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseConfig, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := lookup("API_KEY"); ok {
		c.Auth.APIKey = v
	}
	if v, ok := lookup("HMAC_SECRET"); ok {
		c.Auth.HMACSecret = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Host, "localhost")
	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "reservation-gateway")

	setDefault(&c.Redis.TTLSeconds, 60)

	setDefault(&c.RateLimit.RequestsPerSecond, 20)
	setDefault(&c.RateLimit.Burst, 40)
	setDefault(&c.RateLimit.IdleTimeoutSeconds, 600)

	setDefault(&c.Booking.Timezone, domain.DefaultTimezone)
	setDefault(&c.Booking.Source, domain.DefaultSource)
	setDefault(&c.Booking.CountryCode, domain.DefaultCountryCode)
	setDefault(&c.Booking.DefaultPartySize, domain.DefaultPartySize)
	setDefault(&c.Booking.DefaultCustomerName, domain.DefaultCustomerName)
	setDefault(&c.Booking.SchemaCacheTTLSeconds, 300)
}

// Validate проверяет конфигурацию после применения значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("%w: auth.api_key is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.DefaultPartySize < domain.MinPartySize {
		return fmt.Errorf("%w: booking.default_party_size must be at least %d", ErrInvalidConfig, domain.MinPartySize)
	}
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
