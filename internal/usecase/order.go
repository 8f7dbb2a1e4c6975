package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ordermesh/ordermesh/internal/adapter/users"
	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/domain/repository"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// OrderUseCase encapsulates order placement and lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	users     users.Client
	publisher broker.Publisher
	queue     string
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users users.Client, publisher broker.Publisher, queue string, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users, publisher: publisher, queue: queue, logger: logger}
}

// Place creates an order for the user and emits ORDER_PLACED. The user
// must exist; the row is persisted before the event is published so a
// consumer can always re-read the order it was told about.
func (u *OrderUseCase) Place(ctx context.Context, userID int64) (*model.Order, error) {
	if _, err := u.users.Fetch(ctx, userID); err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	env, err := messaging.NewEnvelope(messaging.EventOrderPlaced, messaging.OrderEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  string(order.Status),
	})
	if err != nil {
		return nil, err
	}
	if err := u.publisher.Publish(ctx, u.queue, env); err != nil {
		return nil, fmt.Errorf("publish order placed: %w", err)
	}

	u.logger.Info("order placed", slog.Int64("order", order.ID), slog.Int64("user", order.UserID))
	return order, nil
}

// AdvanceOrders moves every non-delivered order one step forward and
// returns the rows that changed.
func (u *OrderUseCase) AdvanceOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.AdvanceStatuses(ctx)
}
