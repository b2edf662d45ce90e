package main

import (
	"context"
	"net/http"

	"github.com/braddotcoffee/MinimalRoboBanana/internal/api"
	v1 "github.com/braddotcoffee/MinimalRoboBanana/internal/api/v1"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/api/validator"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/config"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/database"
	apierrors "github.com/braddotcoffee/MinimalRoboBanana/internal/errors"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/metrics"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/repository"
	"github.com/braddotcoffee/MinimalRoboBanana/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			database.NewConnection,
			NewFiberApp,
			NewValidator,

			repository.NewLedgerRepository,
			repository.NewRewardRepository,
			repository.NewTransactionManager,
			service.NewPointsService,
			service.NewRewardService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, m *metrics.Metrics,
	logger *zap.Logger, lc fx.Lifecycle,
) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)

	metricsServer := &http.Server{Addr: cfg.API.MetricsPort, Handler: promhttp.Handler()}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("api server exited", zap.Error(err))
				}
			}()

			go func() {
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			_ = metricsServer.Shutdown(ctx)
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: apierrors.ErrorHandler(),
	})
}

func NewValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}
