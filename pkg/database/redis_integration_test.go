//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"otodoke_life/pkg/logger"
	testtool "otodoke_life/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedCount struct {
	Total int64 `json:"total"`
}

func TestRedisRepository_Integration(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	container, addr, err := testtool.StartRedis(ctx)
	require.NoError(t, err)
	defer func() { _ = container.Terminate(ctx) }()

	client, err := NewRedisClient(ctx, Connection{Addr: addr, RetryCount: 3, RetryInterval: time.Second})
	require.NoError(t, err)
	defer client.Close()

	repo := NewRedisRepository[cachedCount](client, "test:")

	_, err = repo.Get(ctx, "scans")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "scans", cachedCount{Total: 1234}, time.Minute))
	got, err := repo.Get(ctx, "scans")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got.Total)

	raw, err := client.Get(ctx, "test:scans").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1234}`, raw)

	ttl, err := repo.GetTTL(ctx, "scans")
	require.NoError(t, err)
	assert.InDelta(t, 60, ttl, 2)

	require.NoError(t, repo.ExtendTTL(ctx, "scans", 10*time.Minute))
	ttl, err = repo.GetTTL(ctx, "scans")
	require.NoError(t, err)
	assert.Greater(t, ttl, 500)

	require.NoError(t, repo.Del(ctx, "scans"))
	_, err = repo.Get(ctx, "scans")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	logger.SetNewNop()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, Connection{Addr: "127.0.0.1:1", RetryCount: 1, RetryInterval: 10 * time.Millisecond})
	assert.Error(t, err)
}
