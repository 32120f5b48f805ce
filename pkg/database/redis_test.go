package database

import (
	"context"
	"testing"
	"time"

	"jabRental/pkg/config"

	"github.com/stretchr/testify/require"
)

func redisConfig() *config.Config {
	return &config.Config{
		Redis: config.RedisConfig{
			RedisHost:     "cache",
			RedisPort:     "6380",
			RedisPassword: "secret",
			RedisDB:       2,
			PoolSize:      20,
			MinIdleConns:  3,
			DialTimeout:   2 * time.Second,
			ReadTimeout:   time.Second,
			WriteTimeout:  1500 * time.Millisecond,
		},
	}
}

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(redisConfig())

	require.Equal(t, "cache:6380", opts.Addr)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, 20, opts.PoolSize)
	require.Equal(t, 3, opts.MinIdleConns)
	require.Equal(t, 2*time.Second, opts.DialTimeout)
	require.Equal(t, time.Second, opts.ReadTimeout)
	require.Equal(t, 1500*time.Millisecond, opts.WriteTimeout)
}

func TestRedisOptions_IPv6Host(t *testing.T) {
	cfg := redisConfig()
	cfg.Redis.RedisHost = "::1"

	require.Equal(t, "[::1]:6380", redisOptions(cfg).Addr)
}

func TestInitRedis_HonoursCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := InitRedis(ctx, redisConfig())
	require.Error(t, err)
	require.Nil(t, client)
	require.ErrorIs(t, err, context.Canceled)
}
