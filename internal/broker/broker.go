// Package broker provides the durable-queue boundary between services.
// Components depend on the Publisher and Consumer interfaces and receive
// an injected connection at construction, never a process-wide handle.
package broker

import (
	"context"

	"github.com/ordermesh/ordermesh/internal/messaging"
)

// Decision is the explicit outcome a handler returns for one message.
// There is no auto-ack mode; every delivery is either acknowledged or
// rejected back to the broker.
type Decision int

const (
	// Ack acknowledges the message after the side effect persisted.
	Ack Decision = iota
	// Reject negatively acknowledges; the broker requeues per its
	// policy. No retry ceiling is applied on this side.
	Reject
)

// Handler processes a single raw message and decides its fate.
type Handler func(ctx context.Context, body []byte) Decision

// Publisher sends envelopes to a named queue. Fire-and-forget: it does
// not wait for downstream consumption.
type Publisher interface {
	Publish(ctx context.Context, queue string, env messaging.Envelope) error
}

// Consumer registers a handler receiving one message at a time per
// registration. A prefetch of zero leaves the in-flight window unbounded.
type Consumer interface {
	Consume(ctx context.Context, queue string, prefetch int, handler Handler) error
}
