package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ordermesh/ordermesh/internal/broker"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/messaging"
)

// OrderFacade exposes the subset of application functionality required by the scheduler.
type OrderFacade interface {
	AdvanceOrders(ctx context.Context) ([]model.Order, error)
}

// StatusScheduler periodically advances order statuses and emits one
// ORDER_STATUS_UPDATE event per changed order.
type StatusScheduler struct {
	facade    OrderFacade
	publisher broker.Publisher
	queue     string
	interval  time.Duration
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStatusScheduler constructs the order lifecycle scheduler.
func NewStatusScheduler(facade OrderFacade, publisher broker.Publisher, queue string, interval time.Duration, logger *slog.Logger) *StatusScheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatusScheduler{
		facade:    facade,
		publisher: publisher,
		queue:     queue,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches background ticking.
func (s *StatusScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the scheduler to finish.
func (s *StatusScheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *StatusScheduler) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick advances all eligible orders in one bulk update, then publishes
// an event per changed row. Failures are logged and swallowed; the next
// tick naturally retries the update. A publish failure after the update
// committed drops that event.
func (s *StatusScheduler) tick(ctx context.Context) {
	orders, err := s.facade.AdvanceOrders(ctx)
	if err != nil {
		s.logger.Error("advance order statuses failed", slog.String("error", err.Error()))
		return
	}

	for _, order := range orders {
		env, err := messaging.NewEnvelope(messaging.EventOrderStatusUpdate, messaging.OrderEvent{
			OrderID: order.ID,
			UserID:  order.UserID,
			Status:  string(order.Status),
		})
		if err != nil {
			s.logger.Error("encode status update failed", slog.Int64("order", order.ID), slog.String("error", err.Error()))
			continue
		}
		if err := s.publisher.Publish(ctx, s.queue, env); err != nil {
			s.logger.Error("publish status update failed", slog.Int64("order", order.ID), slog.String("error", err.Error()))
			continue
		}
		s.logger.Info("order status updated", slog.Int64("order", order.ID), slog.String("status", string(order.Status)))
	}
}
