package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/domain/model"
	"github.com/ordermesh/ordermesh/internal/server/http/dto"
	testhelpers "github.com/ordermesh/ordermesh/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrderHandlerPlace(t *testing.T) {
	body, _ := json.Marshal(dto.PlaceOrderRequest{UserID: 42})
	stub := testhelpers.OrderFacadeStub{PlaceFn: func(ctx context.Context, userID int64) (*model.Order, error) {
		if userID != 42 {
			t.Fatalf("unexpected userID passed to facade: %d", userID)
		}
		return &model.Order{ID: 7, UserID: userID, Status: model.OrderStatusPlaced}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/api/orders", NewOrderHandler(stub).Place, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var got dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != 7 || got.UserID != 42 || got.Status != string(model.OrderStatusPlaced) {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestOrderHandlerPlaceRejectsBadBody(t *testing.T) {
	for name, body := range map[string][]byte{
		"malformed json":  []byte("{not json"),
		"missing userId":  []byte(`{}`),
		"zero userId":     []byte(`{"userId":0}`),
		"negative userId": []byte(`{"userId":-5}`),
	} {
		resp := performRequest(t, http.MethodPost, "/api/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Place, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", name, resp.Code)
		}
	}
}

func TestOrderHandlerPlaceUnknownUser(t *testing.T) {
	body, _ := json.Marshal(dto.PlaceOrderRequest{UserID: 42})
	stub := testhelpers.OrderFacadeStub{Err: domainErrors.ErrUserNotFound}
	resp := performRequest(t, http.MethodPost, "/api/orders", NewOrderHandler(stub).Place, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var got dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Error != "user does not exist" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
}

func TestOrderHandlerPlaceDependencyUnavailable(t *testing.T) {
	body, _ := json.Marshal(dto.PlaceOrderRequest{UserID: 42})
	stub := testhelpers.OrderFacadeStub{Err: domainErrors.ErrDependencyUnavailable}
	resp := performRequest(t, http.MethodPost, "/api/orders", NewOrderHandler(stub).Place, body)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
}

func TestOrderHandlerPlaceInternalError(t *testing.T) {
	body, _ := json.Marshal(dto.PlaceOrderRequest{UserID: 42})
	stub := testhelpers.OrderFacadeStub{Err: errors.New("insert failed")}
	resp := performRequest(t, http.MethodPost, "/api/orders", NewOrderHandler(stub).Place, body)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", NewHealthHandler(testhelpers.HealthCheckerStub{}).Check, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/health", NewHealthHandler(testhelpers.HealthCheckerStub{Err: errors.New("db down")}).Check, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
