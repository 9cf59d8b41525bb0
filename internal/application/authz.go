package application

import (
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
)

// Action は認可対象の操作を表す
type Action string

const (
	ActionCancelBooking     Action = "booking:cancel"
	ActionConfirmBooking    Action = "booking:confirm"
	ActionCheckInBooking    Action = "booking:checkin"
	ActionCheckOutBooking   Action = "booking:checkout"
	ActionListHotelBookings Action = "booking:list_for_hotel"
	ActionManageHotel       Action = "hotel:manage"
	ActionManageDiscount    Action = "discount:manage"
)

// Guard は (actor, resource, action) の組で認可を判定する
// 役割・所有権チェックを操作ごとに書き散らさず、ここに集約する
type Guard struct{}

// NewGuard は新しいGuardを作成する
func NewGuard() *Guard {
	return &Guard{}
}

// Authorize は指定アクターが操作を行えるかを判定する
// 予約のキャンセルはゲスト本人、確定・チェックイン・チェックアウトと
// ホテル側の一覧・管理操作はホテルオーナーに限られる
func (g *Guard) Authorize(actorID string, action Action, b *booking.Booking, h *hotel.Hotel) error {
	switch action {
	case ActionCancelBooking:
		if b == nil || !b.IsOwnedBy(actorID) {
			return booking.ErrForbidden
		}
	case ActionConfirmBooking, ActionCheckInBooking, ActionCheckOutBooking, ActionListHotelBookings:
		if h == nil || !h.IsOwnedBy(actorID) {
			return booking.ErrForbidden
		}
	case ActionManageHotel, ActionManageDiscount:
		if h == nil || !h.IsOwnedBy(actorID) {
			return hotel.ErrNotHotelOwner
		}
	default:
		return booking.ErrForbidden
	}
	return nil
}
