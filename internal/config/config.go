package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joeshaw/envdecode"
)

// EnvProduction is the ENVIRONMENT value that enables secure cookies.
const EnvProduction = "production"

// Supported DB_DRIVER values.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at startup and passed explicitly to the components that need it.
type Config struct {
	ServerPort     string  `env:"SERVER_PORT,default=8080"`
	DBDriver       string  `env:"DB_DRIVER,default=sqlite"`
	DBDir          string  `env:"DB_DIR,default=./db"`
	DBName         string  `env:"DB_NAME,default=data.db"`
	MySQLDSN       string  `env:"MYSQL_DSN"`
	JWTSecret      string  `env:"JWT_SECRET"`
	Environment    string  `env:"ENVIRONMENT,default=development"`
	RedisAddr      string  `env:"REDIS_ADDR"`
	RedisPass      string  `env:"REDIS_PASSWORD"`
	RedisDB        int     `env:"REDIS_DB,default=0"`
	StaticDir      string  `env:"STATIC_DIR,default=./web"`
	LogLevel       string  `env:"LOG_LEVEL,default=info"`
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT,default=5"`
	SwaggerHost    string  `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
//
// A missing JWT_SECRET is not an error here: the server still starts, and login
// and the request gate report the misconfiguration per request.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required when DB_DRIVER=%s", DriverMySQL)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.LoginRateLimit <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_LIMIT must be positive, got %v", cfg.LoginRateLimit)
	}
	return &cfg, nil
}

// SQLitePath returns the database file location.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DBDir, c.DBName)
}

// IsProduction reports whether cookies must carry the Secure flag.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	secret := "<unset>"
	if c.JWTSecret != "" {
		secret = "*** (masked) ***"
	}
	return fmt.Sprintf("Config{Port: %s, DB: %s, Env: %s, Redis: %q, JWT: %s}",
		c.ServerPort, c.DBDriver, c.Environment, c.RedisAddr, secret)
}
