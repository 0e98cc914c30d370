package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver"` // postgres, sqlite
		DSN             string `yaml:"url"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		SlowQueryMillis int    `yaml:"slow_query_ms"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Session struct {
		Secret       string `yaml:"secret"`
		TTLMinutes   int    `yaml:"ttl"`
		Store        string `yaml:"store"` // db, redis
		CookieName   string `yaml:"cookie_name"`
		CookieSecure bool   `yaml:"cookie_secure"`
	} `yaml:"session"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	MQ struct {
		URL      string `yaml:"url"` // пусто - события только логируются
		Exchange string `yaml:"exchange"`
	} `yaml:"mq"`

	Outbox struct {
		PollIntervalMillis int `yaml:"poll_interval_ms"`
		BatchSize          int `yaml:"batch_size"`
		MaxRetries         int `yaml:"max_retries"`
	} `yaml:"outbox"`
}

var AppConfig *Config

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.Database.SlowQueryMillis) * time.Millisecond
}

func (c *Config) OutboxPollInterval() time.Duration {
	return time.Duration(c.Outbox.PollIntervalMillis) * time.Millisecond
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Load читает .env, затем YAML (CONFIG_PATH или config/config.yaml, если есть),
// затем переменные окружения поверх, затем значения по умолчанию.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig загружает конфигурацию в AppConfig и завершает процесс при ошибке.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	if v := os.Getenv("DATABASE_AUTO_MIGRATE"); v != "" {
		cfg.Database.AutoMigrate, _ = strconv.ParseBool(v)
	}

	setString(&cfg.Session.Secret, "SESSION_SECRET")
	setInt(&cfg.Session.TTLMinutes, "SESSION_TTL")
	setString(&cfg.Session.Store, "SESSION_STORE")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.MQ.URL, "MQ_URL")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.SlowQueryMillis == 0 {
		cfg.Database.SlowQueryMillis = 200
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 7 * 24 * 60
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "db"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "eventhire.sid"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.MQ.Exchange == "" {
		cfg.MQ.Exchange = "eventhire.events"
	}
	if cfg.Outbox.PollIntervalMillis == 0 {
		cfg.Outbox.PollIntervalMillis = 1000
	}
	if cfg.Outbox.BatchSize == 0 {
		cfg.Outbox.BatchSize = 100
	}
	if cfg.Outbox.MaxRetries == 0 {
		cfg.Outbox.MaxRetries = 5
	}
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret (SESSION_SECRET) is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Session.Store {
	case "db", "redis":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
