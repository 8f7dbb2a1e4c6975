package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ordermesh/ordermesh/internal/broker/noop"
	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	testhelpers "github.com/ordermesh/ordermesh/internal/test"
)

func TestRecommendationDisabledPreferenceIsNoOp(t *testing.T) {
	repo := &testhelpers.RecommendationRepositoryStub{}
	publisher := &testhelpers.PublisherRecorder{}
	users := testhelpers.UserClientStub{Profile: &model.UserProfile{ID: 42, Preferences: model.Preferences{OrderUpdates: true}}}
	uc := NewRecommendationUseCase(repo, users, publisher, "recommendations_queue", testLogger())

	if err := uc.HandleOrderPlaced(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.Recommendations()) != 0 {
		t.Fatal("expected no recommendation when disabled")
	}
	if len(publisher.Published()) != 0 {
		t.Fatal("expected no event when disabled")
	}
}

func TestRecommendationFailsClosedOnPreferenceError(t *testing.T) {
	repo := &testhelpers.RecommendationRepositoryStub{}
	users := testhelpers.UserClientStub{Err: domainErrors.ErrDependencyUnavailable}
	uc := NewRecommendationUseCase(repo, users, noop.Publisher{}, "recommendations_queue", testLogger())

	if err := uc.HandleOrderPlaced(context.Background(), 42); err != nil {
		t.Fatalf("expected fail-closed no-op, got %v", err)
	}
	if len(repo.Recommendations()) != 0 {
		t.Fatal("expected no recommendation when preference fetch fails")
	}
}

func TestRecommendationStoresAndPublishes(t *testing.T) {
	repo := &testhelpers.RecommendationRepositoryStub{}
	publisher := &testhelpers.PublisherRecorder{}
	users := testhelpers.UserClientStub{Profile: &model.UserProfile{ID: 42, Preferences: model.Preferences{Recommendations: true}}}
	uc := NewRecommendationUseCase(repo, users, publisher, "recommendations_queue", testLogger())
	uc.pick = func(int) int { return 0 }

	if err := uc.HandleOrderPlaced(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.Recommendations()
	if len(stored) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(stored))
	}
	if stored[0].ProductID != 201 {
		t.Fatalf("unexpected product %d", stored[0].ProductID)
	}
	if stored[0].Reason != "Based on your recent activity" {
		t.Fatalf("unexpected reason %q", stored[0].Reason)
	}

	published := publisher.Published()
	if len(published) != 1 {
		t.Fatalf("expected one event, got %d", len(published))
	}
	if published[0].Queue != "recommendations_queue" {
		t.Fatalf("unexpected queue %q", published[0].Queue)
	}
	evt, err := published[0].Envelope.RecommendationEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt.ProductID != stored[0].ProductID {
		t.Fatalf("event product %d does not match stored %d", evt.ProductID, stored[0].ProductID)
	}
	if evt.Content != "Recommended product: Gaming Chair (ID: 201)" {
		t.Fatalf("unexpected content %q", evt.Content)
	}
}

func TestRecommendationFailsWhenUserVanished(t *testing.T) {
	repo := &testhelpers.RecommendationRepositoryStub{MissingUser: true}
	publisher := &testhelpers.PublisherRecorder{}
	users := testhelpers.UserClientStub{Profile: &model.UserProfile{ID: 42, Preferences: model.Preferences{Recommendations: true}}}
	uc := NewRecommendationUseCase(repo, users, publisher, "recommendations_queue", testLogger())

	err := uc.HandleOrderPlaced(context.Background(), 42)
	if !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if len(publisher.Published()) != 0 {
		t.Fatal("expected no event when persistence fails")
	}
}

func TestRecommendationPublishFailureIsBestEffort(t *testing.T) {
	repo := &testhelpers.RecommendationRepositoryStub{}
	publisher := &testhelpers.PublisherRecorder{Err: errors.New("broker down")}
	users := testhelpers.UserClientStub{Profile: &model.UserProfile{ID: 42, Preferences: model.Preferences{Recommendations: true}}}
	uc := NewRecommendationUseCase(repo, users, publisher, "recommendations_queue", testLogger())

	if err := uc.HandleOrderPlaced(context.Background(), 42); err != nil {
		t.Fatalf("expected publish failure to be swallowed, got %v", err)
	}
	// The stored row survives the failed publish.
	if len(repo.Recommendations()) != 1 {
		t.Fatal("expected recommendation row to remain")
	}
}
