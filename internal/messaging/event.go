// Package messaging defines the event envelope and payload types
// exchanged between services over the broker.
package messaging

import (
	"encoding/json"
	"fmt"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
)

// EventKind identifies the envelope payload type.
type EventKind string

const (
	EventOrderPlaced       EventKind = "ORDER_PLACED"
	EventOrderStatusUpdate EventKind = "ORDER_STATUS_UPDATE"
	EventNewRecommendation EventKind = "NEW_RECOMMENDATION"
)

// Envelope wraps every queue payload. It is the only cross-service
// contract; Data is event-specific.
type Envelope struct {
	Event EventKind       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OrderEvent is the payload of ORDER_PLACED and ORDER_STATUS_UPDATE.
type OrderEvent struct {
	OrderID int64  `json:"orderId"`
	UserID  int64  `json:"userId"`
	Status  string `json:"status"`
}

// RecommendationEvent is the payload of NEW_RECOMMENDATION.
type RecommendationEvent struct {
	UserID      int64  `json:"userId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Content     string `json:"content"`
}

// NewEnvelope wraps payload into an envelope of the given kind.
func NewEnvelope(kind EventKind, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return Envelope{Event: kind, Data: data}, nil
}

// Encode serializes the envelope for publishing.
func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a raw queue message into an envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event kind", domainErrors.ErrInvalidPayload)
	}
	return env, nil
}

// OrderEvent decodes the envelope payload as an order event.
func (e Envelope) OrderEvent() (OrderEvent, error) {
	var payload OrderEvent
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return OrderEvent{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err)
	}
	return payload, nil
}

// RecommendationEvent decodes the envelope payload as a recommendation event.
func (e Envelope) RecommendationEvent() (RecommendationEvent, error) {
	var payload RecommendationEvent
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return RecommendationEvent{}, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err)
	}
	return payload, nil
}
