package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация приложения
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Webhook       WebhookConfig       `toml:"webhook"`
	Notifications NotificationsConfig `toml:"notifications"`
	Auth          AuthConfig          `toml:"auth"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig хранилище маркеров отправленных уведомлений
// Если Enabled = false, маркеры хранятся в памяти процесса
type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	KeyPrefix      string `toml:"key_prefix"`
	MarkerTTLHours int    `toml:"marker_ttl_hours"`
}

// MarkerTTL время жизни маркера
func (r RedisConfig) MarkerTTL() time.Duration {
	return time.Duration(r.MarkerTTLHours) * time.Hour
}

// KafkaConfig доставка уведомлений через Kafka
// Если Enabled = false, уведомления только пишутся в лог
type KafkaConfig struct {
	Enabled      bool   `toml:"enabled"`
	Brokers      string `toml:"brokers"`
	Topic        string `toml:"topic"`
	WriteTimeout int    `toml:"write_timeout"`
}

// BrokerList разбирает список брокеров, разделённых запятыми
func (k KafkaConfig) BrokerList() []string {
	parts := strings.Split(k.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// WebhookConfig доставка уведомлений HTTP-запросом, используется если Kafka отключена
type WebhookConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotificationsConfig настройки планировщика уведомлений
type NotificationsConfig struct {
	Enabled                 bool  `toml:"enabled"`
	PollIntervalSeconds     int   `toml:"poll_interval_seconds"`
	ClientAlertMinutes      []int `toml:"client_alert_minutes"`
	AdminAlertMinutes       int   `toml:"admin_alert_minutes"`
	LongRunningGraceMinutes int   `toml:"long_running_grace_minutes"`
	LongRunningStepMinutes  int   `toml:"long_running_step_minutes"`
}

// PollInterval период опроса расписания
func (n NotificationsConfig) PollInterval() time.Duration {
	return time.Duration(n.PollIntervalSeconds) * time.Second
}

// AuthConfig настройки идентификации
type AuthConfig struct {
	AdminPhone string `toml:"admin_phone"`
}

// Load загружает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и для встроенных конфигов)
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barber-service"
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "barbershop"
	}
	if c.Redis.MarkerTTLHours == 0 {
		c.Redis.MarkerTTLHours = 48
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "barbershop.alerts"
	}
	if c.Kafka.WriteTimeout == 0 {
		c.Kafka.WriteTimeout = 5
	}

	if c.Webhook.Timeout == 0 {
		c.Webhook.Timeout = 5
	}

	if c.Notifications.PollIntervalSeconds == 0 {
		c.Notifications.PollIntervalSeconds = 60
	}
	if len(c.Notifications.ClientAlertMinutes) == 0 {
		c.Notifications.ClientAlertMinutes = []int{20, 10, 5}
	}
	if c.Notifications.AdminAlertMinutes == 0 {
		c.Notifications.AdminAlertMinutes = 5
	}
	if c.Notifications.LongRunningGraceMinutes == 0 {
		c.Notifications.LongRunningGraceMinutes = 5
	}
	if c.Notifications.LongRunningStepMinutes == 0 {
		c.Notifications.LongRunningStepMinutes = 5
	}
}

// Validate проверяет, что значения конфигурации пригодны для запуска
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Kafka.Enabled && len(c.Kafka.BrokerList()) == 0 {
		errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
	}
	if c.Webhook.Enabled && c.Webhook.URL == "" {
		errs = append(errs, errors.New("webhook.url is required when webhook is enabled"))
	}
	for _, m := range c.Notifications.ClientAlertMinutes {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("notifications.client_alert_minutes must be positive, got %d", m))
		}
	}
	if c.Notifications.PollIntervalSeconds < 0 {
		errs = append(errs, errors.New("notifications.poll_interval_seconds must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
