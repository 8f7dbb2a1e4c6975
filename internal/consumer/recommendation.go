package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ordermesh/ordermesh/internal/broker"
	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// RecommendationHandler generates a recommendation for one user.
type RecommendationHandler interface {
	HandleOrderPlaced(ctx context.Context, userID int64) error
}

// Recommendations consumes ORDER_PLACED events and triggers
// recommendation generation.
type Recommendations struct {
	handler RecommendationHandler
	logger  *slog.Logger
}

// NewRecommendations constructs the recommendation dispatcher.
func NewRecommendations(handler RecommendationHandler, logger *slog.Logger) *Recommendations {
	return &Recommendations{handler: handler, logger: logger}
}

// Handle processes one message from the order placement queue.
func (c *Recommendations) Handle(ctx context.Context, body []byte) broker.Decision {
	env, err := messaging.Decode(body)
	if err != nil {
		c.logger.Error("decode message failed", slog.String("error", err.Error()))
		return broker.Reject
	}

	if env.Event != messaging.EventOrderPlaced {
		c.logger.Warn(domainErrors.ErrUnknownEvent.Error(), slog.String("event", string(env.Event)))
		return broker.Reject
	}

	// Tolerate string-typed user ids from older producers; anything
	// that does not parse to an integer is a terminal failure for the
	// message.
	var payload struct {
		UserID json.RawMessage `json:"userId"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		c.logger.Error("decode order event failed", slog.String("error", err.Error()))
		return broker.Reject
	}
	userID, err := strconv.ParseInt(strings.Trim(string(payload.UserID), `"`), 10, 64)
	if err != nil {
		c.logger.Error("invalid user id in order placed event", slog.String("value", string(payload.UserID)))
		return broker.Reject
	}

	if err := c.handler.HandleOrderPlaced(ctx, userID); err != nil {
		c.logger.Error("process order failed", slog.Int64("user", userID), slog.String("error", err.Error()))
		return broker.Reject
	}
	return broker.Ack
}
