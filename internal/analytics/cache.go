package analytics

import (
	"context"
	"errors"
	"time"

	"otodoke_life/pkg/database"
	"otodoke_life/pkg/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Cache 掃描次數的快取
type Cache interface {
	Get(ctx context.Context, key string) (ScanCount, bool)
	Set(ctx context.Context, key string, value ScanCount)
}

type memoryCache struct {
	lru *expirable.LRU[string, ScanCount]
}

// NewMemoryCache 單一 process 使用
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{lru: expirable.NewLRU[string, ScanCount](16, nil, ttl)}
}

func (m *memoryCache) Get(_ context.Context, key string) (ScanCount, bool) {
	return m.lru.Get(key)
}

func (m *memoryCache) Set(_ context.Context, key string, value ScanCount) {
	m.lru.Add(key, value)
}

type redisCache struct {
	repo database.RedisRepository[ScanCount]
	ttl  time.Duration
}

// NewRedisCache 多個 instance 共用; redis 錯誤只記 log, 視為 cache miss
func NewRedisCache(repo database.RedisRepository[ScanCount], ttl time.Duration) Cache {
	return &redisCache{repo: repo, ttl: ttl}
}

func (r *redisCache) Get(ctx context.Context, key string) (ScanCount, bool) {
	v, err := r.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, database.ErrCacheMiss) {
			logger.Log.Warn("analytics cache get", zap.String("key", key), zap.Error(err))
		}
		return ScanCount{}, false
	}
	return v, true
}

func (r *redisCache) Set(ctx context.Context, key string, value ScanCount) {
	if err := r.repo.Set(ctx, key, value, r.ttl); err != nil {
		logger.Log.Warn("analytics cache set", zap.String("key", key), zap.Error(err))
	}
}
