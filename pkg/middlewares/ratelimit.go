package middlewares

import (
	"math"
	"strconv"
	"sync"
	"time"

	"otodoke_life/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	// limiterPoolSize 同時追蹤的 client 數上限
	limiterPoolSize = 4096
	// limiterIdleTTL 閒置的 client 超過就移除
	limiterIdleTTL = 10 * time.Minute
)

// LimiterPool 每個 key (client IP) 一個 token bucket
type LimiterPool struct {
	mu    sync.Mutex
	pool  *expirable.LRU[string, *rate.Limiter]
	rps   float64
	burst int
}

// NewLimiterPool rps 或 burst 不合法時使用 1 / 5
func NewLimiterPool(rps float64, burst int) *LimiterPool {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &LimiterPool{
		pool:  expirable.NewLRU[string, *rate.Limiter](limiterPoolSize, nil, limiterIdleTTL),
		rps:   rps,
		burst: burst,
	}
}

func (p *LimiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.pool.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.pool.Add(key, l)
	return l
}

// Allow key 是否還有 token
func (p *LimiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

// retryAfter 補回一個 token 需要的秒數
func (p *LimiterPool) retryAfter() int {
	sec := int(math.Ceil(1 / p.rps))
	if sec < 1 {
		sec = 1
	}
	return sec
}

// RateLimit 超過限制回傳 429
func RateLimit(pool *LimiterPool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pool.Allow(c.IP()) {
			return c.Next()
		}

		metrics.RateLimited.WithLabelValues(c.Route().Path).Inc()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(pool.retryAfter()))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many requests",
		})
	}
}
