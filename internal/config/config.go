package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // база часовых поясов нужна и в образах без /usr/share/zoneinfo

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// TransportKafka события уведомлений уходят в kafka и обрабатываются worker'ом
	TransportKafka = "kafka"
	// TransportInline уведомления отправляются прямо из API процесса
	TransportInline = "inline"

	// PaymentModeOnline бронирование ждёт оплаты через платёжный шлюз
	PaymentModeOnline = "online"
	// PaymentModeVenue оплата на месте, бронирование сразу подтверждается
	PaymentModeVenue = "venue"
)

// ErrInvalidConfig ошибка валидации конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Payment       PaymentConfig       `toml:"payment"`
	WhatsApp      WhatsAppConfig      `toml:"whatsapp"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Redis         RedisConfig         `toml:"redis"`
	Kafka         KafkaConfig         `toml:"kafka"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
	RateLimit     RateLimitConfig     `toml:"ratelimit"`
	CORS          CORSConfig          `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type PaymentConfig struct {
	BaseURL   string `toml:"base_url"`
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Currency  string `toml:"currency"`
	Timeout   int    `toml:"timeout"`
}

type WhatsAppConfig struct {
	Enabled       bool   `toml:"enabled"`
	BaseURL       string `toml:"base_url"`
	PhoneNumberID string `toml:"phone_number_id"`
	Token         string `toml:"token"`
	Timeout       int    `toml:"timeout"`
}

type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// Addr host:port
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	GroupID string   `toml:"group_id"`
}

type NotificationsConfig struct {
	Transport  string `toml:"transport"`
	AdminEmail string `toml:"admin_email"`
	AdminPhone string `toml:"admin_phone"`
	VenueName  string `toml:"venue_name"`
}

type BookingConfig struct {
	PaymentMode       string `toml:"payment_mode"`
	AdvanceDays       int    `toml:"advance_days"`
	PendingTTLMinutes int    `toml:"pending_ttl_minutes"`
	SweepInterval     int    `toml:"sweep_interval"`
	// Timezone часовой пояс площадки: в нём считаются "сегодня" и начало слотов
	Timezone string `toml:"timezone"`
}

// Location часовой пояс площадки. Значение проверено в Validate.
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает TOML файл, затем подмешивает секреты из окружения (.env загружается, если есть)
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load(".env")

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "playzone_booking"},
		Payment: PaymentConfig{Currency: "INR", Timeout: 10},
		WhatsApp: WhatsAppConfig{
			BaseURL: "https://graph.facebook.com/v19.0",
			Timeout: 10,
		},
		SMTP:  SMTPConfig{Port: 587},
		Redis: RedisConfig{TTLSeconds: 300},
		Kafka: KafkaConfig{Topic: "playzone.notifications", GroupID: "playzone-notifier"},
		Notifications: NotificationsConfig{
			Transport: TransportInline,
			VenueName: "PlayZone",
		},
		Booking: BookingConfig{
			PaymentMode:   PaymentModeOnline,
			AdvanceDays:   60,
			SweepInterval: 60,
			Timezone:      "UTC",
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
	}
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"DB_PASSWORD":        &cfg.Database.Password,
		"JWT_SECRET":         &cfg.Auth.JWTSecret,
		"PAYMENT_KEY_ID":     &cfg.Payment.KeyID,
		"PAYMENT_KEY_SECRET": &cfg.Payment.KeySecret,
		"WHATSAPP_TOKEN":     &cfg.WhatsApp.Token,
		"SMTP_PASSWORD":      &cfg.SMTP.Password,
		"REDIS_PASSWORD":     &cfg.Redis.Password,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}

// Validate проверяет согласованность секций
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 {
		problems = append(problems, "server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required (or JWT_SECRET)")
	}

	switch c.Booking.PaymentMode {
	case PaymentModeOnline:
		if c.Payment.BaseURL == "" || c.Payment.KeyID == "" || c.Payment.KeySecret == "" {
			problems = append(problems, "payment.base_url, key_id and key_secret are required in online mode")
		}
	case PaymentModeVenue:
	default:
		problems = append(problems, fmt.Sprintf("booking.payment_mode %q is not supported", c.Booking.PaymentMode))
	}
	if c.Booking.AdvanceDays < 0 {
		problems = append(problems, "booking.advance_days must not be negative")
	}
	if c.Booking.PendingTTLMinutes < 0 {
		problems = append(problems, "booking.pending_ttl_minutes must not be negative")
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone %q is unknown", c.Booking.Timezone))
	}

	switch c.Notifications.Transport {
	case TransportInline:
	case TransportKafka:
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			problems = append(problems, "kafka.brokers and kafka.topic are required for kafka transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("notifications.transport %q is not supported", c.Notifications.Transport))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "ratelimit.requests_per_second and burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
