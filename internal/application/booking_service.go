package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/pricing"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/transaction"
	redislock "github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/infrastructure/redis"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/clock"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/logger"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/metrics"
)

// ホテル単位ロックの設定
const (
	hotelLockTTL        = 10 * time.Second
	hotelLockMaxRetries = 3
	hotelLockRetryDelay = 100 * time.Millisecond
)

// BookingService は予約のオーケストレーションを担う
// 入力検証 → 空き確認 → 料金計算 → 永続化、および状態遷移の実行
type BookingService struct {
	txManager    transaction.Manager
	bookingRepo  booking.Repository
	hotelRepo    hotel.Repository
	discountRepo hotel.DiscountRepository
	accountRepo  account.Repository
	availability *AvailabilityChecker
	guard        *Guard
	lockManager  *redislock.LockManager
	clk          clock.Clock
	metrics      *metrics.Metrics
}

// NewBookingService は新しいBookingServiceを作成する
// lockManagerとmetricsはnil許容（単体テスト用）
func NewBookingService(
	txManager transaction.Manager,
	bookingRepo booking.Repository,
	hotelRepo hotel.Repository,
	discountRepo hotel.DiscountRepository,
	accountRepo account.Repository,
	lockManager *redislock.LockManager,
	clk clock.Clock,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		txManager:    txManager,
		bookingRepo:  bookingRepo,
		hotelRepo:    hotelRepo,
		discountRepo: discountRepo,
		accountRepo:  accountRepo,
		availability: NewAvailabilityChecker(bookingRepo),
		guard:        NewGuard(),
		lockManager:  lockManager,
		clk:          clk,
		metrics:      m,
	}
}

type CreateBookingInput struct {
	HotelID   string
	GuestID   string
	StartDate time.Time
	EndDate   time.Time
}

// CreateBooking は新しい予約をpending状態で作成する
// 「競合チェック + INSERT」はホテル単位の分散ロックで直列化する
// ロック取得に敗れたリクエストも、事前検知された重複と同じ
// booking.ErrBookingConflict として返す（呼び出し側は日程を変えて再試行する）
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	now := s.clk.Now()
	startDate := input.StartDate.UTC()
	endDate := input.EndDate.UTC()

	if err := booking.ValidateRange(startDate, endDate, now); err != nil {
		s.countBooking("invalid_range")
		return nil, err
	}

	if _, err := s.accountRepo.GetByID(ctx, input.GuestID); err != nil {
		s.countBooking("not_found")
		return nil, err
	}
	h, err := s.hotelRepo.GetByID(ctx, input.HotelID)
	if err != nil {
		s.countBooking("not_found")
		return nil, err
	}

	// ホテル単位の分散ロック（ホテルが異なれば完全に並行可能）
	if s.lockManager != nil {
		lockStart := time.Now()
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, "hotel:"+input.HotelID, hotelLockTTL, hotelLockMaxRetries, hotelLockRetryDelay)
		if err != nil {
			s.observeLock("acquire", "failed", time.Since(lockStart))
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				s.countBooking("conflict")
				return nil, booking.ErrBookingConflict
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		s.observeLock("acquire", "success", time.Since(lockStart))
		defer func() {
			releaseStart := time.Now()
			if err := lock.Release(ctx); err != nil {
				s.observeLock("release", "failed", time.Since(releaseStart))
				logger.Warn("ロック解放に失敗", zap.String("hotel_id", input.HotelID), zap.Error(err))
				return
			}
			s.observeLock("release", "success", time.Since(releaseStart))
		}()
	}

	// 空き確認
	conflict, err := s.availability.HasConflict(ctx, input.HotelID, startDate, endDate)
	if err != nil {
		s.countBooking("error")
		return nil, err
	}
	if conflict {
		s.countBooking("conflict")
		return nil, booking.ErrBookingConflict
	}

	// 料金計算（割引期間は登録順のまま渡す — 先勝ちルールが順序に依存する）
	periods, err := s.discountRepo.ListByHotelID(ctx, input.HotelID)
	if err != nil {
		s.countBooking("error")
		return nil, fmt.Errorf("割引期間の取得に失敗: %w", err)
	}
	totalPrice := pricing.ComputeTotalPrice(h.PricePerDay, startDate, endDate, periods)

	b := booking.NewBooking(input.HotelID, input.GuestID, startDate, endDate, totalPrice, now)
	if err := b.Validate(); err != nil {
		s.countBooking("error")
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.countBooking("error")
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// ストレージ側の排他制約に敗れた場合もErrBookingConflictが返る
	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		if errors.Is(err, booking.ErrBookingConflict) {
			s.countBooking("conflict")
		} else {
			s.countBooking("error")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.countBooking("error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countBooking("success")
	s.gaugeBooking(booking.StatusPending, +1)
	logger.Info("予約を作成",
		zap.String("booking_id", b.ID),
		zap.String("hotel_id", b.HotelID),
		zap.String("guest_id", b.GuestID),
		zap.Int64("total_price", b.TotalPrice),
	)
	return b, nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// CancelBooking は予約をキャンセルする（ゲスト本人のみ、pending/confirmedから）
// キャンセルによりカレンダー枠は解放される
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actorID, ActionCancelBooking, b, nil); err != nil {
		return nil, err
	}
	prev := b.Status
	if err := b.Cancel(s.clk.Now()); err != nil {
		return nil, err
	}
	if err := s.updateStatus(ctx, b); err != nil {
		return nil, err
	}
	s.gaugeBooking(prev, -1)
	logger.Info("予約をキャンセル", zap.String("booking_id", b.ID))
	return b, nil
}

// ConfirmBooking は予約を確定する（ホテルオーナーのみ、pendingから）
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	h, err := s.hotelRepo.GetByID(ctx, b.HotelID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actorID, ActionConfirmBooking, b, h); err != nil {
		return nil, err
	}
	if err := b.Confirm(s.clk.Now()); err != nil {
		return nil, err
	}
	if err := s.updateStatus(ctx, b); err != nil {
		return nil, err
	}
	s.gaugeBooking(booking.StatusPending, -1)
	s.gaugeBooking(booking.StatusConfirmed, +1)
	logger.Info("予約を確定", zap.String("booking_id", b.ID))
	return b, nil
}

// CheckInBooking はチェックインさせる（ホテルオーナーの操作、confirmedから）
func (s *BookingService) CheckInBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	return s.progressByActor(ctx, bookingID, actorID, ActionCheckInBooking)
}

// CheckOutBooking はチェックアウトさせる（ホテルオーナーの操作、checked_inから）
func (s *BookingService) CheckOutBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error) {
	return s.progressByActor(ctx, bookingID, actorID, ActionCheckOutBooking)
}

func (s *BookingService) progressByActor(ctx context.Context, bookingID, actorID string, action Action) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	h, err := s.hotelRepo.GetByID(ctx, b.HotelID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actorID, action, b, h); err != nil {
		return nil, err
	}
	now := s.clk.Now()
	switch action {
	case ActionCheckInBooking:
		err = b.CheckIn(now)
	case ActionCheckOutBooking:
		err = b.CheckOut(now)
	default:
		err = booking.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	if err := s.updateStatus(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListGuestBookings はゲストの予約一覧を返す
// 同一条件での再取得は（間に書き込みがなければ）同一の重複なし集合を返す
func (s *BookingService) ListGuestBookings(ctx context.Context, guestID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.FindByGuest(ctx, guestID, limit, offset)
}

// ListHotelBookings はホテルの予約一覧を返す（ホテルオーナーのみ）
func (s *BookingService) ListHotelBookings(ctx context.Context, hotelID, actorID string, limit, offset int) ([]*booking.Booking, error) {
	h, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actorID, ActionListHotelBookings, nil, h); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.FindByHotel(ctx, hotelID, limit, offset)
}

// ListHotelReservations はホテルの未来日付（start > now）かつ未キャンセルの
// 予約だけを返す（ホテルオーナーのみ）
func (s *BookingService) ListHotelReservations(ctx context.Context, hotelID, actorID string) ([]*booking.Booking, error) {
	h, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(actorID, ActionListHotelBookings, nil, h); err != nil {
		return nil, err
	}
	return s.bookingRepo.FindFutureByHotel(ctx, hotelID, s.clk.Now())
}

// CanRateHotel はゲストが指定ホテルを評価できるかを返す
// チェックイン以降の滞在（checked_in / checked_out）を持つゲストだけが評価できる
// 評価機能本体の読み取り専用ガードとして使う
func (s *BookingService) CanRateHotel(ctx context.Context, guestID, hotelID string) (bool, error) {
	return s.bookingRepo.HasStayForRating(ctx, guestID, hotelID)
}

// ProgressStays は日付の到来した滞在を進める（システム駆動の遷移）
// 開始日を過ぎたconfirmed予約をchecked_inに、終了日を過ぎたchecked_in予約を
// checked_outにし、遷移させた件数を返す
func (s *BookingService) ProgressStays(ctx context.Context) (int, error) {
	now := s.clk.Now()
	count := 0

	dueIns, err := s.bookingRepo.FindDueCheckIns(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("チェックイン対象の取得に失敗: %w", err)
	}
	for _, b := range dueIns {
		if err := b.CheckIn(now); err != nil {
			continue
		}
		if err := s.updateStatus(ctx, b); err != nil {
			logger.Error("チェックイン遷移に失敗", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		s.gaugeBooking(booking.StatusConfirmed, -1)
		s.gaugeBooking(booking.StatusCheckedIn, +1)
		count++
	}

	dueOuts, err := s.bookingRepo.FindDueCheckOuts(ctx, now)
	if err != nil {
		return count, fmt.Errorf("チェックアウト対象の取得に失敗: %w", err)
	}
	for _, b := range dueOuts {
		if err := b.CheckOut(now); err != nil {
			continue
		}
		if err := s.updateStatus(ctx, b); err != nil {
			logger.Error("チェックアウト遷移に失敗", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		s.gaugeBooking(booking.StatusCheckedIn, -1)
		count++
	}
	return count, nil
}

// updateStatus は予約の状態更新をトランザクションで永続化する
func (s *BookingService) updateStatus(ctx context.Context, b *booking.Booking) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (s *BookingService) countBooking(status string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(status).Inc()
	}
}

func (s *BookingService) gaugeBooking(status booking.Status, delta float64) {
	if s.metrics != nil {
		s.metrics.ActiveBookings.WithLabelValues(string(status)).Add(delta)
	}
}

func (s *BookingService) observeLock(operation, status string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.DistributedLockDuration.WithLabelValues(operation, status).Observe(d.Seconds())
	}
}
