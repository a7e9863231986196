package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/application/service"
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

const (
	perPage   = 5
	sortOrder = "created:asc"
	userAgent = "devconnect-api"
)

// Cache holds relayed upstream bodies for a short TTL so the proxy does not
// burn through the upstream rate limit. Cache failures are never surfaced.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	cache        Cache
	cacheTTL     time.Duration
	logger       logger.Logger
}

// NewClient builds the repo-listing client. cache may be nil, in which case
// every call goes upstream.
func NewClient(cfg config.Config, httpClient *http.Client, cache Cache, log logger.Logger) service.RepoLister {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:   httpClient,
		baseURL:      cfg.GitHub.APIBaseURL,
		clientID:     cfg.GitHub.ClientID,
		clientSecret: cfg.GitHub.ClientSecret,
		cache:        cache,
		cacheTTL:     cfg.GitHub.CacheTTL,
		logger:       log,
	}
}

// ListRepos issues one GET for the user's repositories, newest page first by
// creation date. Contract: a non-200 upstream status becomes a domain
// not-found ("No profile found"), never the upstream's own status; a
// transport failure becomes a generic internal failure; a 200 body that is
// not valid JSON fails rather than being relayed as raw text.
func (c *Client) ListRepos(ctx context.Context, username string) (any, error) {
	cacheKey := "github:repos:" + username
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			var payload any
			if err := json.Unmarshal([]byte(cached), &payload); err == nil {
				return payload, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}

	q := req.URL.Query()
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("sort", sortOrder)
	if c.clientID != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewInternal("github request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstream("No profile found",
			fmt.Sprintf("github returned status %d for user %q", resp.StatusCode, username), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewInternal("failed to read github response", err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperror.NewInternal("github response is not valid JSON", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, string(body), c.cacheTTL); err != nil {
			c.logger.Warn("failed to cache github response", zap.String("username", username), zap.Error(err))
		}
	}

	return payload, nil
}
