package application

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/interval"
)

// AvailabilityChecker はホテルのカレンダー空き状況を判定する
// 読み取り専用で、判定は呼び出し時点の予約スナップショットに対して決定的
// （並行リクエストの check-then-insert 競合の直列化は BookingService 側で行う）
type AvailabilityChecker struct {
	bookingRepo booking.Repository
}

// NewAvailabilityChecker は新しいAvailabilityCheckerを作成する
func NewAvailabilityChecker(bookingRepo booking.Repository) *AvailabilityChecker {
	return &AvailabilityChecker{bookingRepo: bookingRepo}
}

// HasConflict は指定ホテルの [startDate, endDate) がカレンダー占有中の予約と
// 重複するかを返す。キャンセル済み・チェックアウト済みの予約は衝突しない
// 呼び出し側が startDate < endDate を検証してから呼ぶこと
func (c *AvailabilityChecker) HasConflict(ctx context.Context, hotelID string, startDate, endDate time.Time) (bool, error) {
	existing, err := c.bookingRepo.FindConflicting(ctx, hotelID, startDate, endDate, booking.CalendarOccupyingStatuses)
	if err != nil {
		return false, fmt.Errorf("既存予約の取得に失敗: %w", err)
	}
	for _, b := range existing {
		if b.Status.OccupiesCalendar() && interval.Overlaps(startDate, endDate, b.StartDate, b.EndDate) {
			return true, nil
		}
	}
	return false, nil
}
