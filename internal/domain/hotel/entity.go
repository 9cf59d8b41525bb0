package hotel

import "time"

// Hotel はホテルエンティティを表す
type Hotel struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	District    string
	PricePerDay int64 // 最小通貨単位（通貨非依存）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewHotel は新しいホテルを作成する
func NewHotel(ownerID, name, description, district string, pricePerDay int64, now time.Time) *Hotel {
	return &Hotel{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		District:    district,
		PricePerDay: pricePerDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy は指定アカウントがこのホテルのオーナーかを返す
func (h *Hotel) IsOwnedBy(accountID string) bool {
	return h.OwnerID == accountID
}

// Validate はホテルの検証を行う
func (h *Hotel) Validate() error {
	if h.OwnerID == "" {
		return ErrOwnerIDRequired
	}
	if h.Name == "" {
		return ErrHotelNameRequired
	}
	if h.PricePerDay < 0 {
		return ErrInvalidPricePerDay
	}
	return nil
}

// DiscountPeriod はホテルに属する割引期間を表す
// 日付は半開区間 [StartDate, EndDate) で、同一ホテル内の期間同士は重複してよい
// 作成後の日付変更は不可（確定済み予約の金額を壊さないため、削除と再作成のみ）
type DiscountPeriod struct {
	ID        string
	HotelID   string
	StartDate time.Time
	EndDate   time.Time
	Rate      int // 割引率（パーセント、10なら10%引き）
	CreatedAt time.Time
}

// NewDiscountPeriod は新しい割引期間を作成する
func NewDiscountPeriod(hotelID string, startDate, endDate time.Time, rate int, now time.Time) *DiscountPeriod {
	return &DiscountPeriod{
		HotelID:   hotelID,
		StartDate: startDate.UTC(),
		EndDate:   endDate.UTC(),
		Rate:      rate,
		CreatedAt: now,
	}
}

// Validate は割引期間の検証を行う
func (d *DiscountPeriod) Validate() error {
	if d.HotelID == "" {
		return ErrHotelIDRequired
	}
	if !d.StartDate.Before(d.EndDate) {
		return ErrInvalidDiscountRange
	}
	if d.Rate < 0 || d.Rate > 100 {
		return ErrInvalidDiscountRate
	}
	return nil
}
