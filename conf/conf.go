package conf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

type Config struct {
	Env       string `env:"ENV" envDefault:"dev" validate:"oneof=dev test prod"`
	JwtKey    string `env:"JWT_KEY" validate:"required"`
	AwsRegion string `env:"AWS_REGION" envDefault:"eu-central-1"`

	HTTP     HTTP
	Log      Log
	Storage  Storage
	Postgres Postgres
	Tracing  Tracing
}

type HTTP struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8080" validate:"required"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

type Storage struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite dynamodb memory"`
	SQLitePath  string `env:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
	DynamoTable string `env:"DYNAMODB_TABLE" validate:"required_if=Driver dynamodb"`
}

type Postgres struct {
	Host               string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port               int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User               string        `env:"POSTGRES_USER" envDefault:"postgres"`
	Password           string        `env:"POSTGRES_PW"`
	PasswordSecretName string        `env:"POSTGRES_PASSWORD_SECRET_NAME"`
	DB                 string        `env:"POSTGRES_DB" envDefault:"writing"`
	SSLMode            string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns           int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10" validate:"gt=0"`
	QueryTimeout       time.Duration `env:"POSTGRES_QUERY_TIMEOUT" envDefault:"5s"`
}

type Tracing struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"writing-backend"`
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Load reads configuration from a .env file (if any), an optional TOML
// file named by CONFIG_FILE and the process environment, in increasing
// order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	environ := map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileVars, err := readTomlFile(path)
		if err != nil {
			return nil, err
		}
		for k, v := range fileVars {
			environ[k] = v
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		environ[k] = v
	}

	return Parse(environ)
}

// Parse builds a validated Config from a flat map of variables.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readTomlFile flattens a TOML file whose keys are variable names
// (e.g. STORAGE_DRIVER = "sqlite"). Arrays become comma separated lists.
func readTomlFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	res := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			res[k] = strings.Join(parts, ",")
		case map[string]any:
			return nil, fmt.Errorf("config file %s: tables are not supported (key %q)", path, k)
		default:
			res[k] = fmt.Sprint(val)
		}
	}
	return res, nil
}
