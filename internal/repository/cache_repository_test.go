package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/brgy-tracker-api/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	repo := NewCacheRepository(client, nil)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, srv
}

type cachedCounts struct {
	Seniors int `json:"seniors"`
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, srv := newCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "dashboard:summary", cachedCounts{Seniors: 4}, time.Minute))
	assert.True(t, srv.Exists("dashboard:summary"))

	var got cachedCounts
	require.NoError(t, repo.Get(ctx, "dashboard:summary", &got))
	assert.Equal(t, 4, got.Seniors)

	srv.FastForward(2 * time.Minute)
	assert.ErrorIs(t, repo.Get(ctx, "dashboard:summary", &got), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, srv := newCacheRepo(t)
	ctx := context.Background()

	require.NoError(t, srv.Set("dashboard:summary", "{}"))
	require.NoError(t, srv.Set("dashboard:other", "{}"))
	require.NoError(t, srv.Set("unrelated", "{}"))

	require.NoError(t, repo.DeleteByPattern(ctx, "dashboard:*"))
	assert.False(t, srv.Exists("dashboard:summary"))
	assert.False(t, srv.Exists("dashboard:other"))
	assert.True(t, srv.Exists("unrelated"))
}

func TestCacheRepositoryCorruptEntryIsMiss(t *testing.T) {
	repo, srv := newCacheRepo(t)
	require.NoError(t, srv.Set("dashboard:summary", "not-json"))

	var got cachedCounts
	assert.ErrorIs(t, repo.Get(context.Background(), "dashboard:summary", &got), appErrors.ErrCacheMiss)
	assert.False(t, srv.Exists("dashboard:summary"))
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var got cachedCounts
	assert.ErrorIs(t, repo.Get(ctx, "k", &got), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "k", got, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
