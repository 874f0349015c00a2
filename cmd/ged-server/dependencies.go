package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/bosserz/ged-assessment/httpapi"
	adminservice "github.com/bosserz/ged-assessment/httpapi/admin"
	quizservice "github.com/bosserz/ged-assessment/httpapi/quiz"
	"github.com/bosserz/ged-assessment/internal/analytics"
	"github.com/bosserz/ged-assessment/internal/config"
	"github.com/bosserz/ged-assessment/internal/httputils"
	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"
)

// ClientMiddleware creates a client middleware that can be injected into gin.
func ClientMiddleware() Middleware {
	return Middleware{
		Handler: httputils.ClientMiddleware(),
	}
}

// CorsMiddleware creates a cors middleware that can be injected into gin.
func CorsMiddleware(cfg config.ServerConfig) Middleware {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "User-Agent", "Referer"},
	}

	// "*" serves any origin; credentials cannot be combined with it
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	return Middleware{
		Handler: cors.New(corsConfig),
	}
}

// LoggerMiddleware creates a request logging middleware that can be injected into gin.
func LoggerMiddleware() Middleware {
	return Middleware{
		Handler: sloggin.New(slog.Default()),
	}
}

// TracingMiddleware creates an OpenTelemetry middleware that can be injected into gin.
func TracingMiddleware(cfg config.ServerConfig) Middleware {
	return Middleware{
		Handler: otelgin.Middleware(cfg.OTel.ServiceName),
	}
}

// QuizService creates the quiz service.
func QuizService(questions questionbank.Source, submissions *storage.SubmissionRepository, tracker *analytics.Tracker) httpapi.Service {
	return quizservice.NewQuizService(questions, submissions, tracker)
}

// AdminService creates the admin service, mounted only when ADMIN_ENABLED is set.
func AdminService(submissions *storage.SubmissionRepository, cfg config.ServerConfig) httpapi.Service {
	if !cfg.AdminEnabled {
		return disabledService{}
	}

	slog.Warn("admin endpoints enabled without authentication")
	return adminservice.NewAdminService(submissions)
}

type disabledService struct{}

func (disabledService) Register(gin.IRouter) {}

// GinEngine creates a gin engine.
func GinEngine(services []httpapi.Service, middlewares []Middleware, cfg config.ServerConfig) *gin.Engine {
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	engine.Use(gin.Recovery())

	for _, middleware := range middlewares {
		engine.Use(middleware.Handler)
	}

	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Namespace("ged"),
		ginprom.Subsystem("http"),
		ginprom.Path("/metrics"),
	)
	engine.Use(prom.Instrument())

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	httpapi.Register(engine, services...)

	return engine
}

// GinLifecycle starts the gin engine.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.ServerConfig) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("gin engine starting", "address", srv.Addr)

				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error running gin engine", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("error shutting down gin engine", "error", err)
				return err
			}

			return nil
		},
	})
}

// Middleware is a middleware that can be injected into gin.
type Middleware struct {
	Handler gin.HandlerFunc
}

// AnnotateMiddleware annotates a middleware function to be injected into gin.
func AnnotateMiddleware(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"middlewares"`),
	)
}

// AnnotateService annotates a service function to be injected into gin.
func AnnotateService(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"services"`),
	)
}
