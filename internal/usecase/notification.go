package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ordermesh/ordermesh/internal/adapter/users"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/domain/repository"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// NotificationUseCase decides whether an event becomes a persisted
// notification, gated on the target user's preferences.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         users.Client
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, users users.Client, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, users: users, logger: logger}
}

// HandleOrderPlaced stores an order-placed notification if the user
// opted into order updates. Returns an error only when persistence
// failed and the message should be redelivered.
func (u *NotificationUseCase) HandleOrderPlaced(ctx context.Context, evt messaging.OrderEvent) error {
	if !u.preferencesFor(ctx, evt.UserID).OrderUpdates {
		u.logger.Info("order updates disabled", slog.Int64("user", evt.UserID))
		return nil
	}
	content := fmt.Sprintf("Order %d has been placed successfully!", evt.OrderID)
	return u.store(ctx, evt.UserID, model.CategoryOrderUpdates, content)
}

// HandleStatusUpdate stores a status-change notification if the user
// opted into order updates.
func (u *NotificationUseCase) HandleStatusUpdate(ctx context.Context, evt messaging.OrderEvent) error {
	if !u.preferencesFor(ctx, evt.UserID).OrderUpdates {
		u.logger.Info("order updates disabled", slog.Int64("user", evt.UserID))
		return nil
	}
	content := fmt.Sprintf("Order %d status updated to %s", evt.OrderID, evt.Status)
	return u.store(ctx, evt.UserID, model.CategoryOrderUpdates, content)
}

// HandleNewRecommendation stores a recommendation notification if the
// user opted into recommendations.
func (u *NotificationUseCase) HandleNewRecommendation(ctx context.Context, evt messaging.RecommendationEvent) error {
	if !u.preferencesFor(ctx, evt.UserID).Recommendations {
		u.logger.Info("recommendations disabled", slog.Int64("user", evt.UserID))
		return nil
	}
	return u.store(ctx, evt.UserID, model.CategoryRecommendation, evt.Content)
}

// preferencesFor fetches the user's current preference snapshot. Fails
// closed: an unreachable user service or a missing user reads as all
// preferences disabled, so no notification is produced.
func (u *NotificationUseCase) preferencesFor(ctx context.Context, userID int64) model.Preferences {
	profile, err := u.users.Fetch(ctx, userID)
	if err != nil {
		u.logger.Error("preference fetch failed", slog.Int64("user", userID), slog.String("error", err.Error()))
		return model.Preferences{}
	}
	return profile.Preferences
}

func (u *NotificationUseCase) store(ctx context.Context, userID int64, category model.NotificationCategory, content string) error {
	n, err := u.notifications.Create(ctx, userID, category, content)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	u.logger.Info("notification created", slog.Int64("notification", n.ID), slog.Int64("user", userID), slog.String("category", string(category)))
	return nil
}
