package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"githubsearch/logger"
	"githubsearch/models"
)

// ProxyClient fetches profiles through the backend instead of calling GitHub
// directly, so the API token never leaves the server
type ProxyClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewProxyClient creates a client for the backend at baseURL
func NewProxyClient(baseURL string) (*ProxyClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	return &ProxyClient{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// FetchProfile calls GET /api/users/profile/{username}
func (c *ProxyClient) FetchProfile(ctx context.Context, username string) (*models.ProfileResponse, error) {
	reqURL := c.baseURL.JoinPath("api", "users", "profile", url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return nil, errors.New(body.Error)
		}
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var out models.ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Repos == nil {
		out.Repos = []models.Repository{}
	}
	return &out, nil
}

// LogNotifier shows toasts by logging them
type LogNotifier struct{}

func (LogNotifier) Error(msg string) {
	logger.Warn("Toast", zap.String("message", msg))
}
