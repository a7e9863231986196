package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

func newTestClient(baseURL string, cache Cache) *Client {
	var cfg config.Config
	cfg.GitHub.APIBaseURL = baseURL
	cfg.GitHub.ClientID = "client-id"
	cfg.GitHub.ClientSecret = "client-secret"
	cfg.GitHub.CacheTTL = time.Minute
	return NewClient(cfg, http.DefaultClient, cache, logger.NewNop()).(*Client)
}

func TestListRepos_RelaysUpstreamBody(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"repo-one"},{"name":"repo-two"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	payload, err := client.ListRepos(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
	assert.Contains(t, gotQuery, "client_id=client-id")

	repos, ok := payload.([]any)
	require.True(t, ok)
	require.Len(t, repos, 2)
	assert.Equal(t, map[string]any{"name": "repo-one"}, repos[0])
}

func TestListRepos_UpstreamNonSuccessIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.ListRepos(context.Background(), "nobody")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "No profile found", appErr.Message)
}

func TestListRepos_TransportFailureIsInternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.ListRepos(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestListRepos_InvalidJSONFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.ListRepos(context.Background(), "octocat")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

type mapCache struct {
	values map[string]string
	sets   int
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func TestListRepos_SecondCallServedFromCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"name":"repo-one"}]`))
	}))
	defer server.Close()

	cache := &mapCache{values: map[string]string{}}
	client := newTestClient(server.URL, cache)

	_, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)
	payload, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.sets)
	repos, ok := payload.([]any)
	require.True(t, ok)
	assert.Len(t, repos, 1)
}
