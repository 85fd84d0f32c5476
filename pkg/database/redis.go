package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"otodoke_life/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisRepository 定义接口
type RedisRepository[T any] interface {
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Get(ctx context.Context, key string) (T, error)
	Del(ctx context.Context, key string) error
	GetTTL(ctx context.Context, key string) (int, error)
	ExtendTTL(ctx context.Context, key string, ttl time.Duration) error
}

// redisRepository 以 JSON 存放 T, key 會加上 prefix
type redisRepository[T any] struct {
	client *redis.Client
	prefix string
}

// NewRedisClient 單機或哨兵連線, ping 失敗時依 RetryCount 重試
func NewRedisClient(ctx context.Context, conn Connection) (*redis.Client, error) {
	var rdb *redis.Client
	if conn.UseSentinel() {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    conn.MasterName,    // 哨兵主节点名称
			SentinelAddrs: conn.SentinelAddrs, // 哨兵地址列表
			Password:      conn.Password,
			DB:            conn.DB,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conn.Addr,
			Password: conn.Password,
			DB:       conn.DB,
		})
	}

	var err error
	for i := 0; i <= conn.RetryCount; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			return rdb, nil
		}
		logger.Log.Warn("redis ping failed",
			zap.Int("attempt", i+1),
			zap.Bool("sentinel", conn.UseSentinel()),
			zap.Error(err),
		)
		if i < conn.RetryCount {
			select {
			case <-ctx.Done():
				_ = rdb.Close()
				return nil, ctx.Err()
			case <-time.After(conn.RetryInterval):
			}
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis: %w", err)
}

// NewRedisRepository init Redis repository (Set , Get, Del, GetTTL, ExtendTTL)
func NewRedisRepository[T any](client *redis.Client, prefix string) RedisRepository[T] {
	return &redisRepository[T]{client: client, prefix: prefix}
}

func (r *redisRepository[T]) key(k string) string {
	return r.prefix + k
}

func (r *redisRepository[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

// Get key 不存在時回傳 ErrCacheMiss
func (r *redisRepository[T]) Get(ctx context.Context, key string) (T, error) {
	var zeroValue T
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zeroValue, ErrCacheMiss
	} else if err != nil {
		return zeroValue, fmt.Errorf("failed to get %s: %w", key, err)
	}

	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		logger.Log.Error("redis unmarshal", zap.String("key", key), zap.Error(err))
		return zeroValue, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return result, nil
}

func (r *redisRepository[T]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *redisRepository[T]) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, r.key(key), ttl).Err()
}

// GetTTL 剩餘秒數, 不存在或沒有 TTL 時為 0
func (r *redisRepository[T]) GetTTL(ctx context.Context, key string) (int, error) {
	ttl, err := r.client.TTL(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to get TTL for key %s: %w", key, err)
	}

	if ttl < 0 {
		return 0, nil
	}
	return int(ttl.Seconds()), nil
}
