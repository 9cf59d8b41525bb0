package booking

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// CalendarOccupyingStatuses はホテルのカレンダーを占有する状態の集合
// この状態の予約が存在する期間には、同一ホテルの新規予約を作成できない
var CalendarOccupyingStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

// OccupiesCalendar はこの状態がカレンダーを占有するかを返す
func (s Status) OccupiesCalendar() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	}
	return false
}

// Booking は予約エンティティを表す
// 日付は半開区間 [StartDate, EndDate) のUTC瞬間で、作成後は変更不可
// （キャンセルは状態だけを変え、日付を書き換えない）
type Booking struct {
	ID         string
	HotelID    string
	GuestID    string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice int64 // 最小通貨単位、サーバー側で計算（クライアント供給不可）
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBooking は新しい予約をpending状態で作成する
func NewBooking(hotelID, guestID string, startDate, endDate time.Time, totalPrice int64, now time.Time) *Booking {
	return &Booking{
		HotelID:    hotelID,
		GuestID:    guestID,
		StartDate:  startDate.UTC(),
		EndDate:    endDate.UTC(),
		TotalPrice: totalPrice,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ValidateRange は宿泊期間の検証を行う
// 開始が終了より前でない場合と、期間全体が過去の場合を拒否する
func ValidateRange(startDate, endDate, now time.Time) error {
	if !startDate.Before(endDate) {
		return ErrInvalidDateRange
	}
	if !endDate.After(now) {
		return ErrStayInPast
	}
	return nil
}

// Confirm は予約を確定する（pendingからのみ）
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする（pendingまたはconfirmedからのみ）
// キャンセルされた予約はカレンダーを占有しない
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
	return nil
}

// CheckIn はチェックインする（confirmedからのみ）
func (b *Booking) CheckIn(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = StatusCheckedIn
	b.UpdatedAt = now
	return nil
}

// CheckOut はチェックアウトする（checked_inからのみ）
func (b *Booking) CheckOut(now time.Time) error {
	if b.Status != StatusCheckedIn {
		return ErrInvalidTransition
	}
	b.Status = StatusCheckedOut
	b.UpdatedAt = now
	return nil
}

// IsOwnedBy は指定アカウントがこの予約のゲストかを返す
func (b *Booking) IsOwnedBy(accountID string) bool {
	return b.GuestID == accountID
}

// RatingEligible は評価投稿が可能な状態かを返す
// チェックイン以降（checked_inまたはchecked_out）の滞在だけが評価できる
func (b *Booking) RatingEligible() bool {
	return b.Status == StatusCheckedIn || b.Status == StatusCheckedOut
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.HotelID == "" {
		return ErrHotelIDRequired
	}
	if b.GuestID == "" {
		return ErrGuestIDRequired
	}
	if !b.StartDate.Before(b.EndDate) {
		return ErrInvalidDateRange
	}
	if b.TotalPrice < 0 {
		return ErrInvalidTotalPrice
	}
	return nil
}
