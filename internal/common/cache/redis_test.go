// Package cache Redis 缓存模块单元测试
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/island-tour-backend/internal/common/config"
)

// setupMiniRedis 创建 miniredis 测试实例
func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// setupTestRedis 初始化测试 Redis 客户端
func setupTestRedis(t *testing.T, s *miniredis.Miniredis) {
	rdb = redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	t.Cleanup(func() {
		_ = rdb.Close()
		rdb = nil
	})
}

func TestInit_Success(t *testing.T) {
	s := setupMiniRedis(t)

	cfg := &config.RedisConfig{
		Host:         s.Host(),
		Port:         s.Server().Addr().Port,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	client, err := Init(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, client)
	t.Cleanup(func() {
		_ = Close()
	})
}

func TestInit_ConnectionFailed(t *testing.T) {
	cfg := &config.RedisConfig{
		Host:        "invalid-host",
		Port:        9999,
		DialTimeout: 1,
	}

	client, err := Init(cfg)
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect redis")
}

func TestGetClient(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)

	assert.NotNil(t, GetClient())
}

func TestIncr(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	n, err := Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestExpire(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	_, err := Incr(ctx, "expiring")
	require.NoError(t, err)
	require.NoError(t, Expire(ctx, "expiring", time.Minute))

	// miniredis 手动推进时间
	s.FastForward(2 * time.Minute)
	assert.False(t, s.Exists("expiring"))
}

func TestDelete(t *testing.T) {
	s := setupMiniRedis(t)
	setupTestRedis(t, s)
	ctx := context.Background()

	_, err := Incr(ctx, "to-delete")
	require.NoError(t, err)
	require.NoError(t, Delete(ctx, "to-delete"))
	assert.False(t, s.Exists("to-delete"))
}
