package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/messaging"
	testhelpers "github.com/ordermesh/ordermesh/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNewStatusSchedulerDefaultsInterval(t *testing.T) {
	s := NewStatusScheduler(&testhelpers.SchedulerFacadeStub{}, &testhelpers.PublisherRecorder{}, "order_updates_queue", 0, testLogger())
	if s.interval != 30*time.Second {
		t.Fatalf("expected default interval 30s, got %s", s.interval)
	}
}

func TestSchedulerPublishesOneEventPerChangedOrder(t *testing.T) {
	facade := &testhelpers.SchedulerFacadeStub{Batches: [][]model.Order{{
		{ID: 1, UserID: 42, Status: model.OrderStatusShipped},
		{ID: 2, UserID: 43, Status: model.OrderStatusDelivered},
	}}}
	publisher := &testhelpers.PublisherRecorder{}

	s := NewStatusScheduler(facade, publisher, "order_updates_queue", 10*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, time.Second, func() bool { return len(publisher.Published()) >= 2 })
	s.Stop()

	published := publisher.Published()
	if len(published) != 2 {
		t.Fatalf("expected exactly two events, got %d", len(published))
	}
	for _, msg := range published {
		if msg.Queue != "order_updates_queue" {
			t.Fatalf("unexpected queue %q", msg.Queue)
		}
		if msg.Envelope.Event != messaging.EventOrderStatusUpdate {
			t.Fatalf("unexpected event kind %q", msg.Envelope.Event)
		}
	}
	evt, err := published[0].Envelope.OrderEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt.OrderID != 1 || evt.UserID != 42 || evt.Status != "shipped" {
		t.Fatalf("unexpected payload %+v", evt)
	}
}

func TestSchedulerSwallowsTickErrors(t *testing.T) {
	facade := &testhelpers.SchedulerFacadeStub{Err: errors.New("db down")}
	publisher := &testhelpers.PublisherRecorder{}

	s := NewStatusScheduler(facade, publisher, "order_updates_queue", 5*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if len(publisher.Published()) != 0 {
		t.Fatal("expected no events on failing ticks")
	}
}

func TestSchedulerDropsEventsOnPublishFailure(t *testing.T) {
	facade := &testhelpers.SchedulerFacadeStub{Batches: [][]model.Order{{
		{ID: 1, UserID: 42, Status: model.OrderStatusShipped},
	}}}
	publisher := &testhelpers.PublisherRecorder{Err: errors.New("broker down")}

	s := NewStatusScheduler(facade, publisher, "order_updates_queue", 5*time.Millisecond, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// The batch is consumed even though publishing fails; the event is
	// dropped, not retried.
	waitFor(t, time.Second, func() bool { return facade.Calls() >= 1 })
	s.Stop()

	if len(publisher.Published()) != 0 {
		t.Fatal("expected no recorded events when publish fails")
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewStatusScheduler(&testhelpers.SchedulerFacadeStub{}, &testhelpers.PublisherRecorder{}, "order_updates_queue", time.Second, testLogger())
	s.Stop()
}
