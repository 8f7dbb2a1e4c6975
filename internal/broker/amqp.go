package broker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ordermesh/ordermesh/internal/messaging"
)

// Conn owns an AMQP connection with its publish channel and the set of
// queues it declared. Safe for concurrent use.
type Conn struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// Connect dials the broker and declares the given queues durable.
// On any failure the whole connect-and-declare sequence is retried
// after a fixed delay until it succeeds or ctx is cancelled.
func Connect(ctx context.Context, url string, queues []string, delay time.Duration, logger *slog.Logger) (*Conn, error) {
	for {
		conn, err := dial(url, queues, logger)
		if err == nil {
			logger.Info("connected to broker")
			return conn, nil
		}
		logger.Error("broker connection failed", slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func dial(url string, queues []string, logger *slog.Logger) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, queue := range queues {
		// Idempotent: redeclaring with identical properties is a no-op.
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	return &Conn{conn: conn, ch: ch, logger: logger}, nil
}

// Publish sends the envelope to a queue asking the broker to persist it
// across restarts. It does not wait for consumption.
func (c *Conn) Publish(ctx context.Context, queue string, env messaging.Envelope) error {
	body, err := env.Encode()
	if err != nil {
		return err
	}
	return c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume opens a dedicated channel for the registration, applies the
// prefetch limit when positive, and pumps deliveries through handler
// until ctx is cancelled or the channel closes.
func (c *Conn) Consume(ctx context.Context, queue string, prefetch int, handler Handler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open consume channel: %w", err)
	}

	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			ch.Close()
			return fmt.Errorf("set prefetch: %w", err)
		}
	}

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				switch handler(ctx, d.Body) {
				case Ack:
					if err := d.Ack(false); err != nil {
						c.logger.Error("ack failed", slog.String("queue", queue), slog.String("error", err.Error()))
					}
				case Reject:
					if err := d.Nack(false, true); err != nil {
						c.logger.Error("nack failed", slog.String("queue", queue), slog.String("error", err.Error()))
					}
				}
			}
		}
	}()

	return nil
}

// Close releases the channel and connection.
func (c *Conn) Close() {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
