package main

import (
	"github.com/bosserz/ged-assessment/internal/deps"
	"go.uber.org/fx"

	_ "github.com/bosserz/ged-assessment/internal/deps/logger"
)

func main() {
	app := fx.New(
		deps.FxCommonModule,
		fx.Provide(
			AnnotateMiddleware(ClientMiddleware),
			AnnotateMiddleware(LoggerMiddleware),
			AnnotateMiddleware(TracingMiddleware),
			AnnotateMiddleware(CorsMiddleware),
			AnnotateService(QuizService),
			AnnotateService(AdminService),
			fx.Annotate(
				GinEngine,
				fx.ParamTags(`group:"services"`, `group:"middlewares"`),
			),
		),
		fx.Invoke(GinLifecycle),
	)

	app.Run()
}
