// Package client consumes the public portfolio API and keeps its own
// freshness cache of the responses.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"
	"portfolio-api/internal/realtime"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Resource paths keyed by cache key.
var paths = map[string]string{
	cache.KeyProfile:    "/api/user/profile",
	cache.KeyProjects:   "/api/projects",
	cache.KeySkills:     "/api/skills",
	cache.KeyExperience: "/api/experience",
}

// StatusError is returned for non-2xx responses. Such responses are never cached.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}

// Client is an HTTP client for the public portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Freshness
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache replaces the default in-memory cache.
func WithCache(fc *cache.Freshness) Option {
	return func(c *Client) { c.cache = fc }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New(cache.NewMemoryStore(cache.Options{ConcurrencySafe: true}), cache.DefaultTTL,
			cache.WithLogger(c.logger))
	}
	return c
}

// Profile returns the site owner's profile, or the default profile on failure.
func (c *Client) Profile(ctx context.Context) cache.Result[models.Profile] {
	return cache.FetchOr(ctx, c.cache, cache.KeyProfile, getter[models.Profile](c, cache.KeyProfile), models.DefaultProfile())
}

// Projects returns the published projects, or an empty list on failure.
func (c *Client) Projects(ctx context.Context) cache.Result[[]models.Project] {
	return cache.FetchOr(ctx, c.cache, cache.KeyProjects, getter[[]models.Project](c, cache.KeyProjects), []models.Project{})
}

// Skills returns every skill, or an empty list on failure.
func (c *Client) Skills(ctx context.Context) cache.Result[[]models.Skill] {
	return cache.FetchOr(ctx, c.cache, cache.KeySkills, getter[[]models.Skill](c, cache.KeySkills), []models.Skill{})
}

// Experience returns the work history, or an empty list on failure.
func (c *Client) Experience(ctx context.Context) cache.Result[[]models.Experience] {
	return cache.FetchOr(ctx, c.cache, cache.KeyExperience, getter[[]models.Experience](c, cache.KeyExperience), []models.Experience{})
}

// Fetch loads the named resource and returns its JSON form.
func (c *Client) Fetch(ctx context.Context, resource string) (any, cache.Source, error) {
	switch resource {
	case cache.KeyProfile:
		r := c.Profile(ctx)
		return r.Value, r.Source, r.Err
	case cache.KeyProjects:
		r := c.Projects(ctx)
		return r.Value, r.Source, r.Err
	case cache.KeySkills:
		r := c.Skills(ctx)
		return r.Value, r.Source, r.Err
	case cache.KeyExperience:
		r := c.Experience(ctx)
		return r.Value, r.Source, r.Err
	}
	return nil, "", fmt.Errorf("unknown resource %q", resource)
}

// HandleEvent applies a realtime cache_invalidated event to the local cache.
func (c *Client) HandleEvent(evt realtime.Event) {
	if evt.Type != realtime.EventCacheInvalidated {
		return
	}
	if len(evt.Keys) == 0 {
		c.cache.InvalidateAll()
		return
	}
	c.cache.Invalidate(evt.Keys...)
}

func getter[T any](c *Client, key string) cache.FetchFunc[T] {
	return func(ctx context.Context) (T, error) {
		var v T
		body, err := c.get(ctx, paths[key])
		if err != nil {
			return v, err
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return v, fmt.Errorf("unmarshal response: %w", err)
		}
		return v, nil
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	requestURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "portfolio-api/1.0")

	c.logger.Debug("fetching-resource", zap.String("url", requestURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
