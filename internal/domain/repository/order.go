package repository

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// OrderRepository persists purchase orders.
type OrderRepository interface {
	// Create inserts an order with status placed.
	Create(ctx context.Context, userID int64) (*model.Order, error)
	// AdvanceStatuses moves every non-delivered order one step forward
	// in a single statement and returns the rows that changed.
	AdvanceStatuses(ctx context.Context) ([]model.Order, error)
}
