package users

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/config"
)

// Module exposes user client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.UserServiceAddress, p.Logger)
}
