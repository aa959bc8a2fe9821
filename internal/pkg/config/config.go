package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"

	StoreDriverSQLite = "sqlite"
	StoreDriverMongo  = "mongo"

	EnvDevelopment = "development"
)

// minSecretLen is the shortest accepted session signing secret, in bytes.
const minSecretLen = 32

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Session SessionConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, required"`
	Backend    string        `env:"SESSION_BACKEND, default=cookie"`
	CookieName string        `env:"SESSION_COOKIE,  default=todo_session"`
	TTL        time.Duration `env:"SESSION_TTL,     default=0s"`
	Secure     bool          `env:"SESSION_SECURE,  default=false"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath string `env:"SQLITE_PATH,  default=db.sqlite"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=todo_list"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from the process environment. In development a
// .env file in the working directory is applied first when present; values
// already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	if env := os.Getenv("ENV"); env == "" || env == EnvDevelopment {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cross-field rules envconfig cannot express.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < minSecretLen {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", minSecretLen)
	}
	switch c.Session.Backend {
	case SessionBackendCookie, SessionBackendRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	switch c.Store.Driver {
	case StoreDriverSQLite, StoreDriverMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Session.TTL < 0 {
		return errors.New("config: SESSION_TTL must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
