package noop

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/messaging"
)

// Publisher discards every envelope. Used when no broker is wired.
type Publisher struct{}

func (Publisher) Publish(_ context.Context, _ string, _ messaging.Envelope) error { return nil }
