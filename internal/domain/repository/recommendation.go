package repository

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// RecommendationRepository persists generated recommendations.
type RecommendationRepository interface {
	// Create verifies the user still exists before inserting; a missing
	// user fails the whole operation with ErrUserNotFound.
	Create(ctx context.Context, rec model.Recommendation) (*model.Recommendation, error)
}
