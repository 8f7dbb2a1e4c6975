package test

import (
	"context"
	"sync"

	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// UserClientStub provides controllable user service lookups.
type UserClientStub struct {
	Profile *model.UserProfile
	Err     error
	FetchFn func(context.Context, int64) (*model.UserProfile, error)
}

// Fetch delegates to the provided function or returns the fixed result.
func (s UserClientStub) Fetch(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Profile != nil {
		return s.Profile, nil
	}
	return &model.UserProfile{ID: userID}, nil
}

// OrderFacadeStub provides controllable order placement for HTTP tests.
type OrderFacadeStub struct {
	Order   *model.Order
	Err     error
	PlaceFn func(context.Context, int64) (*model.Order, error)
}

// Place delegates to the provided function or returns the fixed result.
func (s OrderFacadeStub) Place(ctx context.Context, userID int64) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Order != nil {
		return s.Order, nil
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPlaced}, nil
}

// HealthCheckerStub reports a fixed readiness result.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// SchedulerFacadeStub mimics scheduler interactions with the order use case.
type SchedulerFacadeStub struct {
	mu      sync.Mutex
	Batches [][]model.Order
	Err     error
	calls   int
}

// AdvanceOrders returns the next configured batch.
func (s *SchedulerFacadeStub) AdvanceOrders(context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.calls >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.calls]
	s.calls++
	return batch, nil
}

// Calls reports how many ticks fetched a batch.
func (s *SchedulerFacadeStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
