package handlers

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Place(ctx context.Context, userID int64) (*model.Order, error)
}

// HealthChecker reports readiness of the service's storage.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
