package database

import (
	"context"
	"testing"

	"ecotourism-workers/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	addr := mr.Addr()
	client := NewRedis(config.RedisConfig{Address: addr})
	defer client.Close()

	assert.Equal(t, addr, client.Addr())
	assert.NoError(t, client.Ping(context.Background()))
	assert.Contains(t, client.PoolStats(), "total=")

	mr.Close()
	err = client.Ping(context.Background())
	assert.ErrorContains(t, err, "redis ping failed")
	assert.ErrorContains(t, err, addr)
}

func TestNewRedis_PoolSettings(t *testing.T) {
	client := NewRedis(config.RedisConfig{Address: "localhost:6379", PoolSize: 3, DialTimeout: 250})
	defer client.Close()

	opts := client.Client.Options()
	assert.Equal(t, 3, opts.PoolSize)
	assert.Equal(t, int64(250), opts.DialTimeout.Milliseconds())

	defaults := NewRedis(config.RedisConfig{Address: "localhost:6379"})
	defer defaults.Close()
	assert.Equal(t, 10, defaults.Client.Options().PoolSize)
}

func TestRedisClient_CloseWithoutClient(t *testing.T) {
	var client RedisClient
	assert.NoError(t, client.Close())
}
