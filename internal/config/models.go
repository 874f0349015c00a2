package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// ServerConfig configures the ged-server backend.
type ServerConfig struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	TrustProxies   []string `env:"TRUST_PROXIES"`
	AdminEnabled   bool     `env:"ADMIN_ENABLED" envDefault:"false"`

	Questions QuestionsConfig `envPrefix:"QUESTIONS_"`
	Storage   StorageConfig   `envPrefix:"STORAGE_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	PostHog   PostHogConfig   `envPrefix:"POSTHOG_"`
	OTel      OTelConfig      `envPrefix:"OTEL_"`
}

func (c ServerConfig) Validate() error {
	var result *multierror.Error

	if c.Port <= 0 {
		result = multierror.Append(result, errors.New("PORT must be positive"))
	}
	if err := c.Questions.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Storage.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.OTel.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

type QuestionsConfig struct {
	File     string        `env:"FILE" envDefault:"questions.json"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

func (c QuestionsConfig) Validate() error {
	if c.File == "" {
		return errors.New("QUESTIONS_FILE is required")
	}

	return nil
}

const (
	StorageDriverGCS   = "gcs"
	StorageDriverMinIO = "minio"
	StorageDriverSQL   = "sql"
)

type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"sql"`
	Bucket string `env:"BUCKET" envDefault:"ged-pretest-submission"`

	// GoogleCredentials is the service account JSON used by the gcs driver.
	GoogleCredentials string `env:"GOOGLE_CREDENTIALS,unset"`

	MinIO    MinIOConfig    `envPrefix:"MINIO_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
}

func (c StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverGCS:
		if c.Bucket == "" {
			return errors.New("STORAGE_BUCKET is required")
		}
		if c.GoogleCredentials == "" {
			return errors.New("STORAGE_GOOGLE_CREDENTIALS is required for the gcs driver")
		}
	case StorageDriverMinIO:
		if c.Bucket == "" {
			return errors.New("STORAGE_BUCKET is required")
		}
		return c.MinIO.Validate()
	case StorageDriverSQL:
		return c.Database.Validate()
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Driver)
	}

	return nil
}

type MinIOConfig struct {
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY,unset"`
	UseSSL          bool   `env:"USE_SSL" envDefault:"false"`
	Region          string `env:"REGION"`
}

func (c MinIOConfig) Validate() error {
	if c.Endpoint == "" {
		return errors.New("STORAGE_MINIO_ENDPOINT is required")
	}
	if c.AccessKeyID == "" {
		return errors.New("STORAGE_MINIO_ACCESS_KEY_ID is required")
	}
	if c.SecretAccessKey == "" {
		return errors.New("STORAGE_MINIO_SECRET_ACCESS_KEY is required")
	}

	return nil
}

type DatabaseConfig struct {
	// Driver is a database/sql driver name: "sqlite3" or "pgx".
	Driver string `env:"DRIVER" envDefault:"sqlite3"`
	URL    string `env:"URL" envDefault:"file:ged.db?_fk=1"`
}

func (c DatabaseConfig) Validate() error {
	if c.Driver != "sqlite3" && c.Driver != "pgx" {
		return fmt.Errorf("STORAGE_DATABASE_DRIVER must be sqlite3 or pgx, got %q", c.Driver)
	}
	if c.URL == "" {
		return errors.New("STORAGE_DATABASE_URL is required")
	}

	return nil
}

// RedisConfig enables the question cache when Host is set.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD,unset"`
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// PostHogConfig enables analytics when APIKey is set.
type PostHogConfig struct {
	APIKey string `env:"API_KEY,unset"`
	Host   string `env:"HOST" envDefault:"https://us.i.posthog.com"`
}

const (
	OTelExporterNone   = "none"
	OTelExporterStdout = "stdout"
	OTelExporterOTLP   = "otlp"

	// OTelExporterOTLPGRPC sends OTLP over gRPC instead of HTTP.
	OTelExporterOTLPGRPC = "otlp-grpc"
)

type OTelConfig struct {
	Exporter    string `env:"EXPORTER" envDefault:"none"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ged-server"`
}

func (c OTelConfig) Validate() error {
	switch c.Exporter {
	case OTelExporterNone, OTelExporterStdout, OTelExporterOTLP, OTelExporterOTLPGRPC:
		return nil
	default:
		return fmt.Errorf("unknown OTEL_EXPORTER %q", c.Exporter)
	}
}

// ClientConfig configures the ged-quiz terminal client.
type ClientConfig struct {
	ServerURL    string        `env:"SERVER_URL" envDefault:"http://localhost:8080"`
	TestDuration time.Duration `env:"TEST_DURATION" envDefault:"20m"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OutputDir    string        `env:"OUTPUT_DIR" envDefault:"."`
	LogFile      string        `env:"LOG_FILE" envDefault:"ged-quiz.log"`
}

func (c ClientConfig) Validate() error {
	var result *multierror.Error

	if c.ServerURL == "" {
		result = multierror.Append(result, errors.New("SERVER_URL is required"))
	}
	if c.TestDuration <= 0 {
		result = multierror.Append(result, errors.New("TEST_DURATION must be positive"))
	}
	if c.HTTPTimeout <= 0 {
		result = multierror.Append(result, errors.New("HTTP_TIMEOUT must be positive"))
	}

	return result.ErrorOrNil()
}

// ExporterConfig configures the standalone Prometheus exporter.
type ExporterConfig struct {
	Port int `env:"PORT" envDefault:"9090"`

	Storage StorageConfig `envPrefix:"STORAGE_"`
	OTel    OTelConfig    `envPrefix:"OTEL_"`
}

func (c ExporterConfig) Validate() error {
	var result *multierror.Error

	if c.Port <= 0 {
		result = multierror.Append(result, errors.New("PORT must be positive"))
	}
	if err := c.Storage.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.OTel.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
