// Package app wires runtime components and lifecycle hooks for each of
// the three service binaries.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/config"
	"github.com/ordermesh/ordermesh/internal/server/http/handlers"
	"github.com/ordermesh/ordermesh/internal/server/http/router"
	"github.com/ordermesh/ordermesh/internal/storage/postgres"
	"github.com/ordermesh/ordermesh/internal/usecase"
	"github.com/ordermesh/ordermesh/internal/worker"
)

// OrderModule wires the order service: placement HTTP API plus the
// order lifecycle scheduler.
var OrderModule = fx.Options(
	fx.Provide(
		func(u *usecase.OrderUseCase) handlers.OrderFacade { return u },
		newOrderRouter,
		newHTTPServer,
		newStatusScheduler,
	),
	fx.Invoke(registerOrderLifecycle),
)

func newOrderRouter(facade handlers.OrderFacade, storage *postgres.Storage, logger *slog.Logger) *gin.Engine {
	return router.Setup(facade, storage, logger)
}

func newHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    cfg.RunAddress,
		Handler: engine,
	}
}

type schedulerParams struct {
	fx.In

	Orders    *usecase.OrderUseCase
	Publisher broker.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newStatusScheduler(p schedulerParams) *worker.StatusScheduler {
	return worker.NewStatusScheduler(
		p.Orders,
		p.Publisher,
		p.Config.OrderUpdatesQueue,
		p.Config.StatusTickInterval,
		p.Logger,
	)
}

type orderLifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Scheduler  *worker.StatusScheduler
	Config     *config.Config
}

func registerOrderLifecycle(p orderLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting order service", slog.String("addr", p.Server.Addr))
			// The scheduler runs on the application context so it
			// outlives the start hook.
			p.Scheduler.Start(p.Ctx)
			go serve(p.Server, p.Shutdowner, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Scheduler.Stop()
			if err := shutdownServer(ctx, p.Server, p.Config); err != nil {
				return err
			}
			p.Logger.Info("order service stopped")
			return nil
		},
	})
}

func serve(server *http.Server, shutdowner fx.Shutdowner, logger *slog.Logger) {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server terminated", slog.String("error", err.Error()))
		_ = shutdowner.Shutdown()
	}
}

func shutdownServer(ctx context.Context, server *http.Server, cfg *config.Config) error {
	shutdownCtx := ctx
	cancel := func() {}
	if _, ok := ctx.Deadline(); !ok {
		shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
	}
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
