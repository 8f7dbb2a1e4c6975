package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/config"
	"github.com/ordermesh/ordermesh/internal/consumer"
	"github.com/ordermesh/ordermesh/internal/server/http/router"
	"github.com/ordermesh/ordermesh/internal/storage/postgres"
	"github.com/ordermesh/ordermesh/internal/usecase"
)

// NotificationModule wires the notification fan-out service.
var NotificationModule = fx.Options(
	fx.Provide(
		func(u *usecase.NotificationUseCase) consumer.NotificationHandler { return u },
		consumer.NewNotifications,
		newHealthRouter,
		newHTTPServer,
	),
	fx.Invoke(registerNotificationLifecycle),
)

func newHealthRouter(storage *postgres.Storage, logger *slog.Logger) *gin.Engine {
	return router.SetupHealth(storage, logger)
}

type notificationLifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Consumer   broker.Consumer
	Dispatcher *consumer.Notifications
	Config     *config.Config
}

func registerNotificationLifecycle(p notificationLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting notification service", slog.String("addr", p.Server.Addr))
			queues := []string{
				p.Config.OrderPlacedQueue,
				p.Config.OrderUpdatesQueue,
				p.Config.RecommendationsQueue,
			}
			// Consumers run on the application context so they outlive
			// the start hook and stop on shutdown.
			for _, queue := range queues {
				if err := p.Consumer.Consume(p.Ctx, queue, 0, p.Dispatcher.Handle); err != nil {
					return err
				}
			}
			go serve(p.Server, p.Shutdowner, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := shutdownServer(ctx, p.Server, p.Config); err != nil {
				return err
			}
			p.Logger.Info("notification service stopped")
			return nil
		},
	})
}
