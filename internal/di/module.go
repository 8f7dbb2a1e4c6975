// Package di assembles the fx module graph for each service binary.
package di

import (
	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/adapter/users"
	"github.com/ordermesh/ordermesh/internal/app"
	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/config"
	"github.com/ordermesh/ordermesh/internal/logger"
	"github.com/ordermesh/ordermesh/internal/storage/postgres"
	"github.com/ordermesh/ordermesh/internal/usecase"
)

func base() []fx.Option {
	return []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		broker.Module,
		users.Module,
		usecase.Module,
	}
}

// OrderModule assembles the order service graph.
func OrderModule(opts ...fx.Option) fx.Option {
	modules := append(base(), app.OrderModule)
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// NotificationModule assembles the notification service graph.
func NotificationModule(opts ...fx.Option) fx.Option {
	modules := append(base(), app.NotificationModule)
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// RecommendationModule assembles the recommendation service graph.
func RecommendationModule(opts ...fx.Option) fx.Option {
	modules := append(base(), app.RecommendationModule)
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
