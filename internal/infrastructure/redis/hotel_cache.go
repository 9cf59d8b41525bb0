package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// HotelCache はホテルと割引期間のスナップショットをTTL付きでキャッシュする
// 共有の生マップではなく、明示的なTTLと無効化を持つプロセス横断キャッシュ
// 料金計算の読み取りパスはリポジトリを直接参照するため、ここの鮮度は
// 表示用途にのみ影響する
type HotelCache struct {
	client *redis.Client
}

// HotelSnapshot はキャッシュするホテル情報のスナップショット
type HotelSnapshot struct {
	Hotel           *hotel.Hotel            `json:"hotel"`
	DiscountPeriods []*hotel.DiscountPeriod `json:"discount_periods"`
}

// NewHotelCache は新しいHotelCacheインスタンスを作成する
func NewHotelCache(client *redis.Client) *HotelCache {
	return &HotelCache{client: client}
}

// Get はホテルのスナップショットをキャッシュから取得する
func (c *HotelCache) Get(ctx context.Context, hotelID string) (*HotelSnapshot, error) {
	data, err := c.client.Get(ctx, c.snapshotKey(hotelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var snapshot HotelSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return &snapshot, nil
}

// Set はホテルのスナップショットをキャッシュに保存する
func (c *HotelCache) Set(ctx context.Context, hotelID string, snapshot *HotelSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.snapshotKey(hotelID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はホテルのキャッシュを無効化する
// 割引期間の作成・削除時に必ず呼ぶこと
func (c *HotelCache) Invalidate(ctx context.Context, hotelID string) error {
	if err := c.client.Del(ctx, c.snapshotKey(hotelID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *HotelCache) snapshotKey(hotelID string) string {
	return fmt.Sprintf("hotels:snapshot:%s", hotelID)
}
