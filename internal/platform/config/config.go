package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	// Addr wins over Port when set.
	Addr            string        `env:"PHONEREG_ADDR"`
	Port            string        `env:"PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// CountWorkers is the enumeration parallelism; 0 means one per CPU.
	CountWorkers int `env:"COUNT_WORKERS" envDefault:"0"`
}

// ListenAddr returns the address the HTTP server binds to.
func (s Server) ListenAddr() string {
	if s.Addr != "" {
		return s.Addr
	}
	return ":" + s.Port
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// DatabaseConfig configures Postgres. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	RetryAttempts   int           `env:"DB_RETRY_ATTEMPTS" envDefault:"10"`
	RetryInterval   time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"3s"`
}

// RedisConfig configures the optional shared count cache. An empty URL
// disables Redis.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	CountTTL     time.Duration `env:"REDIS_COUNT_TTL" envDefault:"24h"`
}

// AuditConfig sizes the buffer that carries denied-registration events to the
// audit store off the request path.
type AuditConfig struct {
	DenialBuffer int `env:"AUDIT_DENIAL_BUFFER" envDefault:"256"`
}

// FromEnv loads an optional .env file and builds the Config from environment
// variables so main stays lean.
func FromEnv() (Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()
	return Parse()
}

// Parse builds the Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Database.RetryAttempts < 1 {
		cfg.Database.RetryAttempts = 1
	}
	return cfg, nil
}
