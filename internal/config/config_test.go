package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AdminEnabled)
	assert.Equal(t, "questions.json", cfg.Questions.File)
	assert.Equal(t, 5*time.Minute, cfg.Questions.CacheTTL)
	assert.Equal(t, StorageDriverSQL, cfg.Storage.Driver)
	assert.Equal(t, "ged-pretest-submission", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite3", cfg.Storage.Database.Driver)
	assert.False(t, cfg.Redis.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_ENABLED", "true")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("STORAGE_MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("STORAGE_MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("STORAGE_MINIO_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("QUESTIONS_CACHE_TTL", "30s")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.AdminEnabled)
	assert.Equal(t, "localhost:9000", cfg.Storage.MinIO.Endpoint)
	assert.Equal(t, "minio123", cfg.Storage.MinIO.SecretAccessKey)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 30*time.Second, cfg.Questions.CacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestServerConfig_Validate(t *testing.T) {
	t.Run("reports every problem", func(t *testing.T) {
		cfg := ServerConfig{
			Storage: StorageConfig{Driver: "ftp"},
			OTel:    OTelConfig{Exporter: "zipkin"},
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT must be positive")
		assert.Contains(t, err.Error(), "QUESTIONS_FILE is required")
		assert.Contains(t, err.Error(), `unknown STORAGE_DRIVER "ftp"`)
		assert.Contains(t, err.Error(), `unknown OTEL_EXPORTER "zipkin"`)
	})

	t.Run("gcs requires credentials", func(t *testing.T) {
		cfg := StorageConfig{Driver: StorageDriverGCS, Bucket: "bucket"}
		assert.ErrorContains(t, cfg.Validate(), "STORAGE_GOOGLE_CREDENTIALS")

		cfg.GoogleCredentials = "{}"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("sql driver must be known", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "mysql", URL: "x"}
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("SERVER_URL", "https://ged.example.com")
	t.Setenv("TEST_DURATION", "90s")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://ged.example.com", cfg.ServerURL)
	assert.Equal(t, 90*time.Second, cfg.TestDuration)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.NoError(t, cfg.Validate())

	cfg.TestDuration = 0
	assert.ErrorContains(t, cfg.Validate(), "TEST_DURATION")
}

func TestLoadExporterConfig(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("STORAGE_DATABASE_DRIVER", "pgx")
	t.Setenv("STORAGE_DATABASE_URL", "postgres://localhost/ged")

	cfg, err := LoadExporterConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, StorageDriverSQL, cfg.Storage.Driver)
	assert.Equal(t, "pgx", cfg.Storage.Database.Driver)
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "PORT must be positive")
}
