package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/domain/model"
)

// Client exposes lookups against the user management service.
type Client interface {
	// Fetch returns the user's profile with preference snapshot.
	// A missing user yields ErrUserNotFound; an unreachable service
	// yields ErrDependencyUnavailable.
	Fetch(ctx context.Context, userID int64) (*model.UserProfile, error)
}

// HTTPClient implements Client via the user service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates HTTP user client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse user service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("user service url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the user service for a single user.
func (c *HTTPClient) Fetch(ctx context.Context, userID int64) (*model.UserProfile, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/user/", strconv.FormatInt(userID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrDependencyUnavailable, err)
		}
		var profile model.UserProfile
		if err := json.Unmarshal(body, &profile); err != nil {
			return nil, fmt.Errorf("decode user response: %w", err)
		}
		return &profile, nil
	case http.StatusNotFound:
		return nil, domainErrors.ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("user request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: user service returned %s", domainErrors.ErrDependencyUnavailable, resp.Status)
	}
}
