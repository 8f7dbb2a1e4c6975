// Package consumer turns raw queue deliveries into explicit
// acknowledge/reject decisions around the use case handlers.
package consumer

import (
	"context"
	"log/slog"

	"github.com/ordermesh/ordermesh/internal/broker"
	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// NotificationHandler is the subset of notification logic the fan-out
// consumer needs.
type NotificationHandler interface {
	HandleOrderPlaced(ctx context.Context, evt messaging.OrderEvent) error
	HandleStatusUpdate(ctx context.Context, evt messaging.OrderEvent) error
	HandleNewRecommendation(ctx context.Context, evt messaging.RecommendationEvent) error
}

// Notifications routes envelopes from the order and recommendation
// queues into the notification fan-out.
type Notifications struct {
	handler NotificationHandler
	logger  *slog.Logger
}

// NewNotifications constructs the fan-out dispatcher.
func NewNotifications(handler NotificationHandler, logger *slog.Logger) *Notifications {
	return &Notifications{handler: handler, logger: logger}
}

// Handle processes one message. Anything short of a successful handler
// run is rejected; the broker's redelivery policy governs retries, with
// no retry ceiling applied here.
func (c *Notifications) Handle(ctx context.Context, body []byte) broker.Decision {
	env, err := messaging.Decode(body)
	if err != nil {
		c.logger.Error("decode message failed", slog.String("error", err.Error()))
		return broker.Reject
	}

	switch env.Event {
	case messaging.EventOrderPlaced:
		evt, err := env.OrderEvent()
		if err != nil {
			c.logger.Error("decode order event failed", slog.String("error", err.Error()))
			return broker.Reject
		}
		err = c.handler.HandleOrderPlaced(ctx, evt)
		return c.decide(err)
	case messaging.EventOrderStatusUpdate:
		evt, err := env.OrderEvent()
		if err != nil {
			c.logger.Error("decode order event failed", slog.String("error", err.Error()))
			return broker.Reject
		}
		err = c.handler.HandleStatusUpdate(ctx, evt)
		return c.decide(err)
	case messaging.EventNewRecommendation:
		evt, err := env.RecommendationEvent()
		if err != nil {
			c.logger.Error("decode recommendation event failed", slog.String("error", err.Error()))
			return broker.Reject
		}
		err = c.handler.HandleNewRecommendation(ctx, evt)
		return c.decide(err)
	default:
		c.logger.Warn(domainErrors.ErrUnknownEvent.Error(), slog.String("event", string(env.Event)))
		return broker.Reject
	}
}

func (c *Notifications) decide(err error) broker.Decision {
	if err != nil {
		c.logger.Error("process message failed", slog.String("error", err.Error()))
		return broker.Reject
	}
	return broker.Ack
}
