package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	CafeAPI  CafeAPIConfig  `toml:"cafe_api"`
	Storage  StorageConfig  `toml:"storage"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CafeAPIConfig внешний REST бэкенд кафе
type CafeAPIConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды, применяется к каждому запросу
	PageLimit int    `toml:"page_limit"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres | redis
}

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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды, 0 = без срока жизни
}

// BookingConfig параметры разрешения слотов
type BookingConfig struct {
	Timezone         string `toml:"timezone"`
	RecurringWeeks   int    `toml:"recurring_weeks"`
	FetchConcurrency int    `toml:"fetch_concurrency"`
}

// Location часовой пояс кафе. Load уже проверил, что он существует.
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию.
// Путь можно переопределить переменной окружения CONFIG_PATH.
func Load(path string) (*Config, error) {
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию. Значения из файла перекрывают их.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "petcafe-gateway",
		},
		CafeAPI: CafeAPIConfig{
			Timeout:   10,
			PageLimit: domain.DefaultSlotPageLimit,
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Booking: BookingConfig{
			Timezone:         domain.DefaultTimezone,
			RecurringWeeks:   domain.RecurringWeeksAhead,
			FetchConcurrency: 4,
		},
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.CafeAPI.URL == "" {
		return fmt.Errorf("%w: cafe_api.url is required", ErrInvalidConfig)
	}
	if c.CafeAPI.Timeout <= 0 {
		return fmt.Errorf("%w: cafe_api.timeout must be positive", ErrInvalidConfig)
	}
	if c.CafeAPI.PageLimit <= 0 {
		return fmt.Errorf("%w: cafe_api.page_limit must be positive", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.RecurringWeeks <= 0 {
		return fmt.Errorf("%w: booking.recurring_weeks must be positive", ErrInvalidConfig)
	}
	if c.Booking.FetchConcurrency <= 0 {
		return fmt.Errorf("%w: booking.fetch_concurrency must be positive", ErrInvalidConfig)
	}

	return nil
}
