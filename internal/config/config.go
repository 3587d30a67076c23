// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/license-dashboard/internal/analytics"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	RateLimit               `yaml:"rate_limit"`
	Scheduler               `yaml:"scheduler"`
	Notifier                `yaml:"notifier"`
	Policy                  analytics.Policy `yaml:"analytics_policy"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"1h"`
}

// RabbitMQ структура для подключения к брокеру уведомлений
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// RateLimit структура для настройки ограничителя запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// Scheduler структура для настройки периодической рассылки о продлениях
type Scheduler struct {
	Interval time.Duration `yaml:"interval" env-default:"12h"`
}

// Notifier структура для настройки почтовых уведомлений о продлениях
type Notifier struct {
	SMTPHost   string   `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort   string   `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser   string   `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass   string   `yaml:"smtp_pass" env:"SMTP_PASS"`
	Recipients []string `yaml:"recipients" env:"NOTIFY_RECIPIENTS" env-separator:","`
	Workers    int      `yaml:"workers" env-default:"4"`
}

// MustLoad функция для загрузки конфига. Переменные из .env подхватываются, если файл есть.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("cannot read .env: %s", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла, переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// String возвращает действующие настройки без паролей и строк подключения.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RateLimit: %.1f rps, burst %d\n"+
			"Scheduler: every %s\n"+
			"Notifier:\n"+
			"  SMTP: %s\n"+
			"  Recipients: %d\n"+
			"  Workers: %d\n",
		c.Env,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RPS,
		c.Burst,
		c.Interval,
		net.JoinHostPort(c.SMTPHost, c.SMTPPort),
		len(c.Recipients),
		c.Workers,
	)
}
