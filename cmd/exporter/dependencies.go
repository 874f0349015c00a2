package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/deps"
	"github.com/bosserz/ged-assessment/internal/metrics"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/workers"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

func ExporterConfig() (config.ExporterConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("error loading .env file", "error", err)
	}

	cfg, err := config.LoadExporterConfig()
	if err != nil {
		return config.ExporterConfig{}, err
	}

	return cfg, cfg.Validate()
}

func OTelConfig(cfg config.ExporterConfig) config.OTelConfig {
	return cfg.OTel
}

func SubmissionRepository(lifecycle fx.Lifecycle, cfg config.ExporterConfig) (*storage.SubmissionRepository, error) {
	store, err := deps.OpenStore(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	lifecycle.Append(fx.StopHook(store.Close))

	return storage.NewSubmissionRepository(store), nil
}

func PrometheusMetrics(submissions *storage.SubmissionRepository) prometheus.Gatherer {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		metrics.NewSubmissionCollector(submissions),
	)

	return registry
}

func PrometheusHTTPHandler(cfg config.ExporterConfig, gatherer prometheus.Gatherer, lifecycle fx.Lifecycle) {
	httpCtx, cancel := context.WithCancel(context.Background())

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(
		gatherer,
		promhttp.HandlerOpts{
			MaxRequestsInFlight: 100,
			Timeout:             metrics.ScrapeTimeout,
			EnableOpenMetrics:   true,
		},
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			workers.Global.Go(func() {
				slog.Info("prometheus http handler starting", "address", srv.Addr)
				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error starting prometheus http handler", "error", err)
				}
			})

			workers.Global.Go(func() {
				<-httpCtx.Done()

				slog.Info("prometheus http handler shutting down")
				if err := srv.Shutdown(context.Background()); err != nil {
					slog.Error("error shutting down prometheus http handler", "error", err)
				}
			})

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			workers.Global.Wait()

			return nil
		},
	})
}
