package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCache(t *testing.T) {
	client := setupTestRedis(t)
	cache := NewSlotCache(client)
	ctx := context.Background()
	slotKey := "slot:test-rest:2025-07-01 18:00:00"

	t.Run("キャッシュミス時はErrCacheMissを返す", func(t *testing.T) {
		_, err := cache.GetActiveCount(ctx, slotKey)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("キャッシュにセットした値を取得できる", func(t *testing.T) {
		err := cache.SetActiveCount(ctx, slotKey, 3, 30*time.Second)
		require.NoError(t, err)

		count, err := cache.GetActiveCount(ctx, slotKey)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("キャッシュを無効化できる", func(t *testing.T) {
		err := cache.SetActiveCount(ctx, slotKey, 4, 30*time.Second)
		require.NoError(t, err)

		err = cache.Invalidate(ctx, slotKey)
		require.NoError(t, err)

		_, err = cache.GetActiveCount(ctx, slotKey)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestSlotCache_TTL(t *testing.T) {
	client := setupTestRedis(t)
	cache := NewSlotCache(client)
	ctx := context.Background()
	slotKey := "slot:test-rest-ttl:2025-07-01 18:30:00"

	t.Run("TTL経過後はキャッシュミスになる", func(t *testing.T) {
		err := cache.SetActiveCount(ctx, slotKey, 2, 100*time.Millisecond)
		require.NoError(t, err)

		count, err := cache.GetActiveCount(ctx, slotKey)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		time.Sleep(150 * time.Millisecond)
		_, err = cache.GetActiveCount(ctx, slotKey)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
