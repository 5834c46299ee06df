package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type AppConfig struct {
	Port        string `yaml:"port" env:"PORT" validate:"required"`
	Environment string `yaml:"environment" env:"APP_ENV"`

	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	RedisURL         string                     `yaml:"redis_url" env:"REDIS_URL"`
	RateLimitEnabled bool                       `yaml:"rate_limit_enabled" env:"RATE_LIMIT_ENABLED"`
	RateLimitConfigs map[string]RateLimitConfig `yaml:"rate_limits"`

	EnforceHTTPS bool `yaml:"enforce_https" env:"ENFORCE_HTTPS"`
}

type DatabaseConfig struct {
	Driver         string `yaml:"driver" env:"DATABASE_DRIVER" validate:"oneof=sqlite postgres memory"`
	Path           string `yaml:"path" env:"DATABASE_PATH"`
	URL            string `yaml:"url" env:"DATABASE_URL" validate:"required_if=Driver postgres"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
	LogQueries     bool   `yaml:"log_queries" env:"DATABASE_LOG_QUERIES"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" validate:"required"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" validate:"gt=0"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" validate:"gte=4,lte=31"`
}

type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name" env:"SERVICE_NAME"`
	LokiURL      string `yaml:"loki_url" env:"LOKI_URL"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	MetricsPort  string `yaml:"metrics_port" env:"METRICS_PORT"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:        "8080",
		Environment: "development",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "database.db",
		},
		Auth: AuthConfig{
			TokenTTL:   3 * time.Hour,
			BcryptCost: 10,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "accountapp",
		},
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /rpc": {
				Requests: 30,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE and the
// process environment, in that order.
func LoadConfig() (*AppConfig, error) {
	cfg := GetDefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	return nil
}

func ParseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

func (c *AppConfig) Validate() error {
	err := validator.New().Struct(c)

	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %s", validationErrors.Error())
	}

	return err
}

func (c *AppConfig) MigrationsPath() string {
	if c.Database.MigrationsPath != "" {
		return c.Database.MigrationsPath
	}

	return "db/migrations/" + c.Database.Driver
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
