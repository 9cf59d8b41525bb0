package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
	redisinfra "github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/infrastructure/redis"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/clock"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/logger"
)

// ホテルスナップショットのキャッシュ保持期間
const hotelSnapshotTTL = 5 * time.Minute

// HotelService はホテルと割引期間の管理を担う
type HotelService struct {
	hotelRepo    hotel.Repository
	discountRepo hotel.DiscountRepository
	guard        *Guard
	cache        *redisinfra.HotelCache
	clk          clock.Clock
}

// NewHotelService は新しいHotelServiceを作成する
// cacheはnil許容（単体テスト用）
func NewHotelService(hotelRepo hotel.Repository, discountRepo hotel.DiscountRepository, cache *redisinfra.HotelCache, clk clock.Clock) *HotelService {
	return &HotelService{
		hotelRepo:    hotelRepo,
		discountRepo: discountRepo,
		guard:        NewGuard(),
		cache:        cache,
		clk:          clk,
	}
}

type CreateHotelInput struct {
	OwnerID     string
	Name        string
	Description string
	District    string
	PricePerDay int64
}

// CreateHotel は新しいホテルを作成する
func (s *HotelService) CreateHotel(ctx context.Context, input CreateHotelInput) (*hotel.Hotel, error) {
	h := hotel.NewHotel(input.OwnerID, input.Name, input.Description, input.District, input.PricePerDay, s.clk.Now())
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("ホテル作成に失敗しました: %w", err)
	}
	return h, nil
}

// GetHotel はIDからホテルを取得する
func (s *HotelService) GetHotel(ctx context.Context, id string) (*hotel.Hotel, error) {
	return s.hotelRepo.GetByID(ctx, id)
}

// ListHotels はホテル一覧を取得する
func (s *HotelService) ListHotels(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.hotelRepo.List(ctx, limit, offset)
}

// GetHotelSnapshot はホテルと割引期間一覧のスナップショットを返す（表示用）
// TTL付きキャッシュを経由する。料金計算はこのパスを使わず、常に
// リポジトリを直接参照すること
func (s *HotelService) GetHotelSnapshot(ctx context.Context, hotelID string) (*redisinfra.HotelSnapshot, error) {
	if s.cache != nil {
		snapshot, err := s.cache.Get(ctx, hotelID)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得に失敗", zap.String("hotel_id", hotelID), zap.Error(err))
		}
	}

	h, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	periods, err := s.discountRepo.ListByHotelID(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("割引期間の取得に失敗: %w", err)
	}
	snapshot := &redisinfra.HotelSnapshot{Hotel: h, DiscountPeriods: periods}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hotelID, snapshot, hotelSnapshotTTL); err != nil {
			logger.Warn("キャッシュ保存に失敗", zap.String("hotel_id", hotelID), zap.Error(err))
		}
	}
	return snapshot, nil
}

type AddDiscountPeriodInput struct {
	HotelID   string
	ActorID   string
	StartDate time.Time
	EndDate   time.Time
	Rate      int
}

// AddDiscountPeriod はホテルに割引期間を追加する（ホテルオーナーのみ）
// 既存の割引期間との重複は許容される（料金計算は登録順の先勝ち）
func (s *HotelService) AddDiscountPeriod(ctx context.Context, input AddDiscountPeriodInput) (*hotel.DiscountPeriod, error) {
	h, err := s.hotelRepo.GetByID(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(input.ActorID, ActionManageDiscount, nil, h); err != nil {
		return nil, err
	}
	d := hotel.NewDiscountPeriod(input.HotelID, input.StartDate, input.EndDate, input.Rate, s.clk.Now())
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("割引期間の作成に失敗: %w", err)
	}
	s.invalidateSnapshot(ctx, input.HotelID)
	return d, nil
}

// RemoveDiscountPeriod は割引期間を削除する（ホテルオーナーのみ）
// 日付の変更は提供しない。確定済み予約の金額を壊さないため、作成後は削除と
// 再作成だけを許す
func (s *HotelService) RemoveDiscountPeriod(ctx context.Context, periodID, actorID string) error {
	d, err := s.discountRepo.GetByID(ctx, periodID)
	if err != nil {
		return err
	}
	h, err := s.hotelRepo.GetByID(ctx, d.HotelID)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(actorID, ActionManageDiscount, nil, h); err != nil {
		return err
	}
	if err := s.discountRepo.Delete(ctx, periodID); err != nil {
		return fmt.Errorf("割引期間の削除に失敗: %w", err)
	}
	s.invalidateSnapshot(ctx, d.HotelID)
	return nil
}

// ListDiscountPeriods はホテルの割引期間一覧を登録順で返す
func (s *HotelService) ListDiscountPeriods(ctx context.Context, hotelID string) ([]*hotel.DiscountPeriod, error) {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.discountRepo.ListByHotelID(ctx, hotelID)
}

func (s *HotelService) invalidateSnapshot(ctx context.Context, hotelID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, hotelID); err != nil {
		logger.Warn("キャッシュ無効化に失敗", zap.String("hotel_id", hotelID), zap.Error(err))
	}
}
