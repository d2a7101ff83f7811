package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainhub/internal/platform/config"
)

func TestNew(t *testing.T) {
	t.Run("empty URL disables redis", func(t *testing.T) {
		c, err := New(context.Background(), config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("connects and reports health", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := New(context.Background(), config.RedisConfig{
			URL:         "redis://" + mr.Addr(),
			PoolSize:    2,
			DialTimeout: time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		assert.NoError(t, c.Health(context.Background()))
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := New(context.Background(), config.RedisConfig{URL: "://nope"})
		assert.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("overrides only what is set", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:         "redis://localhost:6380/2",
			PoolSize:    7,
			ReadTimeout: 250 * time.Millisecond,
		})
		require.NoError(t, err)
		assert.Equal(t, "localhost:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
		assert.Zero(t, opts.MinIdleConns)
	})

	t.Run("unreachable server fails the ping", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(context.Background(), config.RedisConfig{URL: "redis://" + addr, DialTimeout: 100 * time.Millisecond})
		assert.Error(t, err)
	})
}
