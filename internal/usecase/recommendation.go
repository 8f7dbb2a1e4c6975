package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/ordermesh/ordermesh/internal/adapter/users"
	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/domain/repository"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// catalog is the fixed set of candidate products recommendations are
// drawn from.
var catalog = []model.Product{
	{ID: 201, Name: "Gaming Chair"},
	{ID: 202, Name: "Mechanical Keyboard"},
	{ID: 203, Name: "HD Webcam"},
	{ID: 204, Name: "Ergonomic Desk"},
	{ID: 205, Name: "Wireless Charger"},
	{ID: 206, Name: "Smartwatch"},
	{ID: 207, Name: "Fitness Tracker"},
	{ID: 208, Name: "Portable Projector"},
	{ID: 209, Name: "Action Camera"},
	{ID: 210, Name: "Drone with Camera"},
}

// RecommendationUseCase generates and stores product recommendations in
// response to placed orders.
type RecommendationUseCase struct {
	recommendations repository.RecommendationRepository
	users           users.Client
	publisher       broker.Publisher
	queue           string
	logger          *slog.Logger
	pick            func(n int) int
}

// NewRecommendationUseCase constructs RecommendationUseCase.
func NewRecommendationUseCase(recommendations repository.RecommendationRepository, users users.Client, publisher broker.Publisher, queue string, logger *slog.Logger) *RecommendationUseCase {
	return &RecommendationUseCase{
		recommendations: recommendations,
		users:           users,
		publisher:       publisher,
		queue:           queue,
		logger:          logger,
		pick:            rand.IntN,
	}
}

// HandleOrderPlaced generates a recommendation for the ordering user if
// they opted in. Persistence happens before the NEW_RECOMMENDATION
// publish; a failed publish is logged and not retried, and does not
// roll back the stored row.
func (u *RecommendationUseCase) HandleOrderPlaced(ctx context.Context, userID int64) error {
	if !u.preferencesFor(ctx, userID).Recommendations {
		u.logger.Info("recommendations disabled", slog.Int64("user", userID))
		return nil
	}

	product := catalog[u.pick(len(catalog))]
	rec := model.Recommendation{
		UserID:    userID,
		ProductID: product.ID,
		Reason:    "Based on your recent activity",
	}

	stored, err := u.recommendations.Create(ctx, rec)
	if err != nil {
		return fmt.Errorf("store recommendation: %w", err)
	}

	env, err := messaging.NewEnvelope(messaging.EventNewRecommendation, messaging.RecommendationEvent{
		UserID:      stored.UserID,
		ProductID:   stored.ProductID,
		ProductName: product.Name,
		Content:     fmt.Sprintf("Recommended product: %s (ID: %d)", product.Name, product.ID),
	})
	if err != nil {
		u.logger.Error("encode recommendation event failed", slog.String("error", err.Error()))
		return nil
	}
	if err := u.publisher.Publish(ctx, u.queue, env); err != nil {
		u.logger.Error("publish recommendation failed", slog.Int64("user", userID), slog.String("error", err.Error()))
		return nil
	}

	u.logger.Info("recommendation generated", slog.Int64("recommendation", stored.ID), slog.Int64("user", userID), slog.Int64("product", stored.ProductID))
	return nil
}

// preferencesFor fetches the user's preference snapshot, failing closed
// the same way the notification fan-out does.
func (u *RecommendationUseCase) preferencesFor(ctx context.Context, userID int64) model.Preferences {
	profile, err := u.users.Fetch(ctx, userID)
	if err != nil {
		u.logger.Error("preference fetch failed", slog.Int64("user", userID), slog.String("error", err.Error()))
		return model.Preferences{}
	}
	return profile.Preferences
}
