// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"ecotourism-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient holds the connection used by the analytics log.
type RedisClient struct {
	Client *redis.Client
	addr   string
}

// NewRedis does not dial; call Ping to check the server is reachable.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	dial := config.GetDuration(cfg.DialTimeout)
	if dial <= 0 {
		dial = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     poolSize,
		MinIdleConns: 1,
	})
	return &RedisClient{Client: rdb, addr: cfg.Address}
}

func (c *RedisClient) Addr() string { return c.addr }

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed (%s): %w", c.addr, err)
	}
	return nil
}

// PoolStats summarises the connection pool for the readiness endpoint.
func (c *RedisClient) PoolStats() string {
	s := c.Client.PoolStats()
	return fmt.Sprintf("total=%d idle=%d stale=%d timeouts=%d", s.TotalConns, s.IdleConns, s.StaleConns, s.Timeouts)
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
