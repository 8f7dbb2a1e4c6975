package repository

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// NotificationRepository persists user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, userID int64, category model.NotificationCategory, content string) (*model.Notification, error)
}
