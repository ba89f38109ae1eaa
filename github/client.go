package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"githubsearch/logger"
	"githubsearch/models"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 30 * time.Second

	// explorePageSize is the number of repositories returned by SearchRepos
	explorePageSize = 10
)

var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("github api error")
)

// RateLimit represents GitHub's rate limit information
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Client represents a GitHub API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    *url.URL
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root, e.g. GitHub Enterprise.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil && raw != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

type searchResponse struct {
	TotalCount int                 `json:"total_count"`
	Items      []models.Repository `json:"items"`
}

func NewClient(token string, opts ...Option) *Client {
	baseURL, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	logger.Info("Initializing GitHub client",
		zap.String("base_url", c.baseURL.String()),
		zap.Bool("authenticated", token != ""))
	return c
}

// FetchUser fetches the public profile of a user
func (c *Client) FetchUser(ctx context.Context, username string) (*models.UserProfile, error) {
	reqURL := c.baseURL.JoinPath("users", url.PathEscape(username))

	logger.Info("Fetching user profile",
		zap.String("username", username),
		zap.String("url", reqURL.String()))

	var profile models.UserProfile
	if err := c.get(ctx, reqURL.String(), &profile); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, err)
	}

	logger.Info("Successfully fetched user profile",
		zap.String("username", profile.Login),
		zap.Int("public_repos", profile.PublicRepos))

	return &profile, nil
}

// FetchRepos fetches the repositories listed at reposURL, as returned in a
// user profile's repos_url field
func (c *Client) FetchRepos(ctx context.Context, reposURL string) ([]models.Repository, error) {
	if reposURL == "" {
		return nil, fmt.Errorf("%w: empty repos url", ErrUpstream)
	}

	logger.Info("Fetching repositories", zap.String("url", reposURL))

	var repos []models.Repository
	if err := c.get(ctx, reposURL, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	if repos == nil {
		repos = []models.Repository{}
	}

	logger.Info("Successfully fetched repositories",
		zap.String("url", reposURL),
		zap.Int("count", len(repos)))

	return repos, nil
}

// SearchRepos returns the most starred repositories written in language
func (c *Client) SearchRepos(ctx context.Context, language string) ([]models.Repository, error) {
	reqURL := c.baseURL.JoinPath("search", "repositories")
	q := reqURL.Query()
	q.Set("q", "language:"+language)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(explorePageSize))
	reqURL.RawQuery = q.Encode()

	logger.Info("Searching repositories",
		zap.String("language", language),
		zap.String("url", reqURL.String()))

	var result searchResponse
	if err := c.get(ctx, reqURL.String(), &result); err != nil {
		return nil, fmt.Errorf("failed to search repositories for %s: %w", language, err)
	}
	if result.Items == nil {
		result.Items = []models.Repository{}
	}

	logger.Info("Successfully searched repositories",
		zap.String("language", language),
		zap.Int("total_count", result.TotalCount),
		zap.Int("count", len(result.Items)))

	return result.Items, nil
}

// get performs a GET request against the API and decodes the JSON body into out
func (c *Client) get(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("GitHub request failed",
			zap.Error(err),
			zap.String("url", reqURL))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	logRateLimit(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		logger.Warn("GitHub resource not found", zap.String("url", reqURL))
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logger.Error("Unexpected GitHub response",
			zap.Int("status_code", resp.StatusCode),
			zap.String("url", reqURL))
		return fmt.Errorf("%w: status code %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("Failed to decode GitHub response",
			zap.Error(err),
			zap.String("url", reqURL))
		return fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}

	return nil
}

// parseRateLimit parses rate limit information from response headers
func parseRateLimit(resp *http.Response) RateLimit {
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	remaining, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	reset, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)

	return RateLimit{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix(reset, 0),
	}
}

// logRateLimit reports the remaining quota; exhausted limits surface as a
// regular upstream error
func logRateLimit(resp *http.Response) {
	if resp.Header.Get("X-RateLimit-Remaining") == "" {
		return
	}
	rl := parseRateLimit(resp)
	if rl.Remaining == 0 {
		logger.Warn("GitHub rate limit exhausted",
			zap.Int("limit", rl.Limit),
			zap.Time("reset_time", rl.Reset))
		return
	}
	logger.Debug("GitHub rate limit",
		zap.Int("limit", rl.Limit),
		zap.Int("remaining", rl.Remaining))
}
