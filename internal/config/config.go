package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
)

// ErrInvalidConfig возвращается, когда значения конфигурации некорректны
var ErrInvalidConfig = errors.New("config: invalid value")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Redis        RedisConfig        `toml:"redis"`
	Availability AvailabilityConfig `toml:"availability"`
	Reservations ReservationsConfig `toml:"reservations"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled           bool   `toml:"enabled"`
	ServiceName       string `toml:"service_name"`
	Path              string `toml:"path"`
	PoolStatsInterval int    `toml:"pool_stats_interval"` // секунды
}

// AuthConfig параметры проверки ID-токенов LINE
type AuthConfig struct {
	LineChannelID     string `toml:"line_channel_id"`
	LineChannelSecret string `toml:"line_channel_secret"`
	// Открыть эндпоинты /public/reservations без аутентификации
	AllowAnonymous bool `toml:"allow_anonymous"`
}

// RedisConfig параметры кеша меню. Пустой addr отключает кеш
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	MenuKey  string `toml:"menu_key"`
	MenuTTL  int    `toml:"menu_ttl"` // секунды
}

// Enabled возвращает true, если кеш настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// AvailabilityConfig параметры расчета слотов
type AvailabilityConfig struct {
	Timezone    string `toml:"timezone"`
	OverlapMode string `toml:"overlap_mode"`
}

// ReservationsConfig параметры смены статуса бронирований
type ReservationsConfig struct {
	TransitionPolicy string `toml:"transition_policy"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "barbershop",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:           true,
			ServiceName:       "barbershop-reservation",
			Path:              "/metrics",
			PoolStatsInterval: 15,
		},
		Redis: RedisConfig{
			MenuKey: "barbershop:menus",
			MenuTTL: 300,
		},
		Availability: AvailabilityConfig{
			Timezone:    "Asia/Tokyo",
			OverlapMode: string(availability.OverlapRequestDuration),
		},
		Reservations: ReservationsConfig{
			TransitionPolicy: "permissive",
		},
	}
}

// Load читает .env (если есть), затем TOML файл поверх значений по умолчанию,
// затем переменные окружения. Пустой path означает только значения по умолчанию и окружение
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: DB_PORT=%q", ErrInvalidConfig, v)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("LINE_CHANNEL_ID"); v != "" {
		c.Auth.LineChannelID = v
	}
	if v := os.Getenv("LINE_CHANNEL_SECRET"); v != "" {
		c.Auth.LineChannelSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port=%d", c.Server.HTTPPort))
	}
	if !availability.OverlapMode(c.Availability.OverlapMode).IsValid() {
		problems = append(problems, fmt.Sprintf("availability.overlap_mode=%q", c.Availability.OverlapMode))
	}
	if _, ok := domain.TransitionPolicyByName(c.Reservations.TransitionPolicy); !ok {
		problems = append(problems, fmt.Sprintf("reservations.transition_policy=%q", c.Reservations.TransitionPolicy))
	}
	if _, err := time.LoadLocation(c.Availability.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("availability.timezone=%q", c.Availability.Timezone))
	}
	if strings.TrimSpace(c.Auth.LineChannelID) == "" {
		problems = append(problems, "auth.line_channel_id is empty")
	}
	if c.Auth.LineChannelSecret == "" {
		problems = append(problems, "auth.line_channel_secret is empty")
	}
	if c.Metrics.Enabled && c.Metrics.PoolStatsInterval <= 0 {
		problems = append(problems, fmt.Sprintf("metrics.pool_stats_interval=%d", c.Metrics.PoolStatsInterval))
	}
	if c.Redis.MenuTTL < 0 {
		problems = append(problems, fmt.Sprintf("redis.menu_ttl=%d", c.Redis.MenuTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

// Location часовой пояс салона
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Availability.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// OverlapMode режим расчета пересечений слотов
func (c *Config) OverlapMode() availability.OverlapMode {
	return availability.OverlapMode(c.Availability.OverlapMode)
}

// TransitionPolicy политика смены статусов
func (c *Config) TransitionPolicy() domain.TransitionPolicy {
	policy, ok := domain.TransitionPolicyByName(c.Reservations.TransitionPolicy)
	if !ok {
		return domain.PermissiveTransitions{}
	}
	return policy
}
