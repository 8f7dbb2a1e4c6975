package app

import (
	"context"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/config"
	"github.com/ordermesh/ordermesh/internal/consumer"
	"github.com/ordermesh/ordermesh/internal/usecase"
)

// RecommendationModule wires the recommendation generation service.
var RecommendationModule = fx.Options(
	fx.Provide(
		func(u *usecase.RecommendationUseCase) consumer.RecommendationHandler { return u },
		consumer.NewRecommendations,
		newHealthRouter,
		newHTTPServer,
	),
	fx.Invoke(registerRecommendationLifecycle),
)

type recommendationLifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Consumer   broker.Consumer
	Dispatcher *consumer.Recommendations
	Config     *config.Config
}

func registerRecommendationLifecycle(p recommendationLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting recommendation service", slog.String("addr", p.Server.Addr))
			// Prefetch of one serializes generation per consumer so a
			// slow store cannot be overwhelmed by a burst of orders.
			if err := p.Consumer.Consume(p.Ctx, p.Config.OrderPlacedQueue, 1, p.Dispatcher.Handle); err != nil {
				return err
			}
			go serve(p.Server, p.Shutdowner, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := shutdownServer(ctx, p.Server, p.Config); err != nil {
				return err
			}
			p.Logger.Info("recommendation service stopped")
			return nil
		},
	})
}
