package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SlotCacheInterface はスロット占有数キャッシュのインターフェース
type SlotCacheInterface interface {
	GetActiveCount(ctx context.Context, slotKey string) (int, error)
	SetActiveCount(ctx context.Context, slotKey string, count int, ttl time.Duration) error
	Invalidate(ctx context.Context, slotKey string) error
}

// SlotCache は (restaurant_id, スロット) ごとのアクティブ予約数キャッシュを管理する
// 空き照会の読み取り負荷をDBから逃がすためのもので、定員チェックには使用しない
type SlotCache struct {
	client *redis.Client
}

// NewSlotCache は新しいSlotCacheインスタンスを作成する
func NewSlotCache(client *redis.Client) *SlotCache {
	return &SlotCache{client: client}
}

// GetActiveCount はスロットのアクティブ予約数をキャッシュから取得する
func (c *SlotCache) GetActiveCount(ctx context.Context, slotKey string) (int, error) {
	val, err := c.client.Get(ctx, c.countKey(slotKey)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetActiveCount はスロットのアクティブ予約数をキャッシュに保存する
func (c *SlotCache) SetActiveCount(ctx context.Context, slotKey string, count int, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.countKey(slotKey), count, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はスロットのキャッシュを無効化する
// 予約の作成・変更・キャンセルの後に呼ぶ
func (c *SlotCache) Invalidate(ctx context.Context, slotKey string) error {
	if err := c.client.Del(ctx, c.countKey(slotKey)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *SlotCache) countKey(slotKey string) string {
	return fmt.Sprintf("occupancy:%s", slotKey)
}

var _ SlotCacheInterface = (*SlotCache)(nil)
