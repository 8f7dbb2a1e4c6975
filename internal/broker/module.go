package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/config"
)

// Module wires broker connection and interfaces for fx graphs.
var Module = fx.Options(
	fx.Provide(newConn),
	fx.Provide(
		func(c *Conn) Publisher { return c },
		func(c *Conn) Consumer { return c },
	),
	fx.Invoke(registerLifecycle),
)

type connParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newConn(p connParams) (*Conn, error) {
	queues := []string{
		p.Config.OrderPlacedQueue,
		p.Config.OrderUpdatesQueue,
		p.Config.RecommendationsQueue,
	}
	return Connect(p.Ctx, p.Config.BrokerURL, queues, p.Config.ReconnectDelay, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, conn *Conn) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			conn.Close()
			return nil
		},
	})
}
