package main

import (
	"github.com/bosserz/ged-assessment/internal/deps"
	"go.uber.org/fx"

	_ "github.com/bosserz/ged-assessment/internal/deps/logger"
)

func main() {
	app := fx.New(
		fx.Provide(
			ExporterConfig,
			OTelConfig,
			SubmissionRepository,
			PrometheusMetrics,
		),
		fx.Invoke(deps.TracerProvider),
		fx.Invoke(deps.LoggerProvider),
		fx.Invoke(PrometheusHTTPHandler),
	)

	app.Run()
}
