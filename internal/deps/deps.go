// Package deps contains the dependencies for ged-server and admin-cli.
package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bosserz/ged-assessment/internal/analytics"
	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/workers"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisotel"
	"go.uber.org/fx"
)

// ServerConfig loads the environment variables from the .env file and returns a config.ServerConfig.
func ServerConfig() (config.ServerConfig, error) {
	loadDotenv()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.ServerConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.ServerConfig{}, err
	}

	return cfg, nil
}

// ClientConfig loads the environment variables from the .env file and returns a config.ClientConfig.
func ClientConfig() (config.ClientConfig, error) {
	loadDotenv()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		return config.ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return config.ClientConfig{}, fmt.Errorf("validate client config: %w", err)
	}

	return cfg, nil
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("error loading .env file", "error", err)
	}
}

// RedisClient creates a traced rueidis.Client.
func RedisClient(cfg config.RedisConfig) (rueidis.Client, error) {
	client, err := rueidisotel.NewClient(rueidis.ClientOption{
		InitAddress: []string{
			fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		},
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		slog.Error("error creating redis client", "error", err)
		return nil, err
	}

	return client, nil
}

// QuestionSource reads the question file, cached in Redis when REDIS_HOST is set.
func QuestionSource(lifecycle fx.Lifecycle, cfg config.ServerConfig) (questionbank.Source, error) {
	source := questionbank.NewFileSource(cfg.Questions.File)

	if !cfg.Redis.Enabled() {
		slog.Info("question cache disabled")
		return source, nil
	}

	client, err := RedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.StopHook(client.Close))

	return questionbank.NewCachedSource(source, client, cfg.Questions.CacheTTL), nil
}

// ClosableStore is a storage.Store that owns a connection.
type ClosableStore interface {
	storage.Store
	Close() error
}

// OpenStore opens the storage backend named by STORAGE_DRIVER.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (ClosableStore, error) {
	switch cfg.Driver {
	case config.StorageDriverGCS:
		return storage.NewGCSStore(ctx, cfg.Bucket, cfg.GoogleCredentials)
	case config.StorageDriverMinIO:
		return storage.NewMinIOStore(ctx, storage.MinIOOptions{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKeyID,
			SecretAccessKey: cfg.MinIO.SecretAccessKey,
			UseSSL:          cfg.MinIO.UseSSL,
			Region:          cfg.MinIO.Region,
			Bucket:          cfg.Bucket,
		})
	case config.StorageDriverSQL:
		return storage.OpenSQLStore(ctx, cfg.Database.Driver, cfg.Database.URL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Store opens the configured store and closes it when the app stops.
func Store(lifecycle fx.Lifecycle, cfg config.ServerConfig) (storage.Store, error) {
	store, err := OpenStore(context.Background(), cfg.Storage)
	if err != nil {
		slog.Error("error opening storage", "driver", cfg.Storage.Driver, "error", err)
		return nil, err
	}

	slog.Info("storage opened", "driver", cfg.Storage.Driver)
	lifecycle.Append(fx.StopHook(store.Close))

	return store, nil
}

// SubmissionRepository creates a storage.SubmissionRepository.
func SubmissionRepository(store storage.Store) *storage.SubmissionRepository {
	return storage.NewSubmissionRepository(store)
}

// PostHogClient creates a posthog.Client, or nil when POSTHOG_API_KEY is unset.
func PostHogClient(lifecycle fx.Lifecycle, cfg config.ServerConfig) (posthog.Client, error) {
	if cfg.PostHog.APIKey == "" {
		return nil, nil
	}

	client, err := posthog.NewWithConfig(cfg.PostHog.APIKey, posthog.Config{
		Endpoint: cfg.PostHog.Host,
	})
	if err != nil {
		slog.Error("error creating posthog client", "error", err)
		return nil, err
	}

	lifecycle.Append(fx.StopHook(func() error {
		// let queued captures reach the client before it flushes
		workers.Global.Wait()
		return client.Close()
	}))

	return client, nil
}

// OTelConfig extracts the tracing settings of the server.
func OTelConfig(cfg config.ServerConfig) config.OTelConfig {
	return cfg.OTel
}

// Tracker creates an analytics.Tracker.
func Tracker(client posthog.Client) *analytics.Tracker {
	return analytics.NewTracker(client)
}

var FxCommonModule = fx.Module("common",
	fx.Provide(ServerConfig),
	fx.Provide(OTelConfig),
	fx.Provide(QuestionSource),
	fx.Provide(Store),
	fx.Provide(SubmissionRepository),
	fx.Provide(PostHogClient),
	fx.Provide(Tracker),
	fx.Invoke(TracerProvider),
	fx.Invoke(LoggerProvider),
)
