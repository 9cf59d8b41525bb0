package booking

import (
	"context"
	"time"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	// 期間重複の排他制約に違反した場合は ErrBookingConflict を返す
	Create(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// FindConflicting は指定ホテル・期間と重複する、指定状態の予約を取得する
	FindConflicting(ctx context.Context, hotelID string, startDate, endDate time.Time, statuses []Status) ([]*Booking, error)

	// FindByGuest はゲストの予約一覧を取得する（作成日時の降順）
	FindByGuest(ctx context.Context, guestID string, limit, offset int) ([]*Booking, error)

	// FindByHotel はホテルの予約一覧を取得する（開始日の昇順）
	FindByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*Booking, error)

	// FindFutureByHotel はホテルの未来日付かつ未キャンセルの予約を取得する
	FindFutureByHotel(ctx context.Context, hotelID string, now time.Time) ([]*Booking, error)

	// Update は予約の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// HasStayForRating はゲストが指定ホテルで評価可能な滞在を持つかを返す
	HasStayForRating(ctx context.Context, guestID, hotelID string) (bool, error)

	// FindDueCheckIns は開始日を過ぎたconfirmed予約を取得する
	FindDueCheckIns(ctx context.Context, now time.Time) ([]*Booking, error)

	// FindDueCheckOuts は終了日を過ぎたchecked_in予約を取得する
	FindDueCheckOuts(ctx context.Context, now time.Time) ([]*Booking, error)
}
