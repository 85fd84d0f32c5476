package database

import (
	"errors"
	"time"
)

// ErrCacheMiss key 不存在
var ErrCacheMiss = errors.New("redis: key not found")

// Connection definition redis connection setting
type Connection struct {
	Addr          string
	MasterName    string
	SentinelAddrs []string
	Password      string
	DB            int

	RetryCount    int
	RetryInterval time.Duration
}

// UseSentinel 有設定哨兵時走 failover client
func (c Connection) UseSentinel() bool {
	return len(c.SentinelAddrs) > 0
}
