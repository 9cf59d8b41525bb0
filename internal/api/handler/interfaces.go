package handler

import (
	"context"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/application"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
	redisinfra "github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/infrastructure/redis"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	CheckInBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	CheckOutBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	ListGuestBookings(ctx context.Context, guestID string, limit, offset int) ([]*booking.Booking, error)
	ListHotelBookings(ctx context.Context, hotelID, actorID string, limit, offset int) ([]*booking.Booking, error)
	ListHotelReservations(ctx context.Context, hotelID, actorID string) ([]*booking.Booking, error)
	CanRateHotel(ctx context.Context, guestID, hotelID string) (bool, error)
}

// HotelServiceInterface はホテルサービスのインターフェース
type HotelServiceInterface interface {
	CreateHotel(ctx context.Context, input application.CreateHotelInput) (*hotel.Hotel, error)
	GetHotel(ctx context.Context, id string) (*hotel.Hotel, error)
	ListHotels(ctx context.Context, limit, offset int) ([]*hotel.Hotel, error)
	GetHotelSnapshot(ctx context.Context, hotelID string) (*redisinfra.HotelSnapshot, error)
	AddDiscountPeriod(ctx context.Context, input application.AddDiscountPeriodInput) (*hotel.DiscountPeriod, error)
	RemoveDiscountPeriod(ctx context.Context, periodID, actorID string) error
	ListDiscountPeriods(ctx context.Context, hotelID string) ([]*hotel.DiscountPeriod, error)
}

// AccountServiceInterface はアカウントサービスのインターフェース
type AccountServiceInterface interface {
	RegisterAccount(ctx context.Context, input application.RegisterAccountInput) (*account.Account, error)
	GetAccount(ctx context.Context, id string) (*account.Account, error)
}
