package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestFetchParsesPreferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/42" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"preferences":{"promotions":false,"orderUpdates":true,"recommendations":false}}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	profile, err := client.Fetch(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != 42 {
		t.Fatalf("unexpected id %d", profile.ID)
	}
	if !profile.Preferences.OrderUpdates || profile.Preferences.Recommendations {
		t.Fatalf("unexpected preferences %+v", profile.Preferences)
	}
}

func TestFetchDistinguishesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Fetch(context.Background(), 42); !errors.Is(err, domainErrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestFetchMapsServerErrorsToDependencyUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Fetch(context.Background(), 42); !errors.Is(err, domainErrors.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestFetchMapsTransportErrorsToDependencyUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Fetch(context.Background(), 42); !errors.Is(err, domainErrors.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestFetchRejectsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Fetch(context.Background(), 42); err == nil {
		t.Fatal("expected decode error")
	}
}
