package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ordermesh/ordermesh/internal/adapter/users"
	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/config"
	"github.com/ordermesh/ordermesh/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	newNotificationUseCase,
	newRecommendationUseCase,
)

type orderParams struct {
	fx.In

	Orders    repository.OrderRepository
	Users     users.Client
	Publisher broker.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Users, p.Publisher, p.Config.OrderPlacedQueue, p.Logger)
}

type notificationParams struct {
	fx.In

	Notifications repository.NotificationRepository
	Users         users.Client
	Logger        *slog.Logger
}

func newNotificationUseCase(p notificationParams) *NotificationUseCase {
	return NewNotificationUseCase(p.Notifications, p.Users, p.Logger)
}

type recommendationParams struct {
	fx.In

	Recommendations repository.RecommendationRepository
	Users           users.Client
	Publisher       broker.Publisher
	Config          *config.Config
	Logger          *slog.Logger
}

func newRecommendationUseCase(p recommendationParams) *RecommendationUseCase {
	return NewRecommendationUseCase(p.Recommendations, p.Users, p.Publisher, p.Config.RecommendationsQueue, p.Logger)
}
