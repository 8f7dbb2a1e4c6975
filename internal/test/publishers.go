package test

import (
	"context"
	"sync"

	"github.com/ordermesh/ordermesh/internal/messaging"
)

// PublishedMessage stores one recorded publish call.
type PublishedMessage struct {
	Queue    string
	Envelope messaging.Envelope
}

// PublisherRecorder captures published envelopes for assertions.
type PublisherRecorder struct {
	mu       sync.Mutex
	Messages []PublishedMessage
	Err      error
}

// Publish records the envelope or fails with the configured error.
func (p *PublisherRecorder) Publish(_ context.Context, queue string, env messaging.Envelope) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Messages = append(p.Messages, PublishedMessage{Queue: queue, Envelope: env})
	return nil
}

// Published returns a snapshot of recorded messages.
func (p *PublisherRecorder) Published() []PublishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedMessage, len(p.Messages))
	copy(out, p.Messages)
	return out
}
