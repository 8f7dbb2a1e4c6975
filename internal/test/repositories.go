package test

import (
	"context"
	"sync"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders []model.Order
	Next   int64
	Err    error
}

// Create inserts an order with status placed.
func (s *OrderRepositoryStub) Create(_ context.Context, userID int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Next == 0 {
		s.Next = 1
	}
	order := model.Order{ID: s.Next, UserID: userID, Status: model.OrderStatusPlaced}
	s.Next++
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// AdvanceStatuses applies the transition rule to the in-memory set and
// returns the changed orders.
func (s *OrderRepositoryStub) AdvanceStatuses(context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed []model.Order
	for i, order := range s.Orders {
		switch order.Status {
		case model.OrderStatusPlaced:
			s.Orders[i].Status = model.OrderStatusShipped
		case model.OrderStatusShipped:
			s.Orders[i].Status = model.OrderStatusDelivered
		default:
			continue
		}
		changed = append(changed, s.Orders[i])
	}
	return changed, nil
}

// NotificationRepositoryStub records created notifications.
type NotificationRepositoryStub struct {
	mu      sync.Mutex
	Created []model.Notification
	Next    int64
	Err     error
}

// Create records the notification or fails with the configured error.
func (s *NotificationRepositoryStub) Create(_ context.Context, userID int64, category model.NotificationCategory, content string) (*model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Next == 0 {
		s.Next = 1
	}
	n := model.Notification{ID: s.Next, UserID: userID, Category: category, Content: content}
	s.Next++
	s.Created = append(s.Created, n)
	return &n, nil
}

// Notifications returns a snapshot of recorded rows.
func (s *NotificationRepositoryStub) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.Created))
	copy(out, s.Created)
	return out
}

// RecommendationRepositoryStub records created recommendations and can
// simulate a vanished user.
type RecommendationRepositoryStub struct {
	mu          sync.Mutex
	Created     []model.Recommendation
	Next        int64
	Err         error
	MissingUser bool
}

// Create records the recommendation unless the stub simulates failure.
func (s *RecommendationRepositoryStub) Create(_ context.Context, rec model.Recommendation) (*model.Recommendation, error) {
	if s.MissingUser {
		return nil, domainErrors.ErrUserNotFound
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Next == 0 {
		s.Next = 1
	}
	rec.ID = s.Next
	s.Next++
	s.Created = append(s.Created, rec)
	return &rec, nil
}

// Recommendations returns a snapshot of recorded rows.
func (s *RecommendationRepositoryStub) Recommendations() []model.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Recommendation, len(s.Created))
	copy(out, s.Created)
	return out
}
