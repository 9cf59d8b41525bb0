package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
)

// toHTTPError はドメインのセンチネルエラーをHTTPステータスに対応付ける
// 衝突(409)・権限(403)・不在(404)を区別して返し、それ以外のドメイン
// エラーは400、未知のエラーは500とする
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, hotel.ErrHotelNotFound),
		errors.Is(err, hotel.ErrDiscountPeriodNotFound),
		errors.Is(err, account.ErrAccountNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, booking.ErrBookingConflict),
		errors.Is(err, account.ErrEmailAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, booking.ErrForbidden),
		errors.Is(err, hotel.ErrNotHotelOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, account.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrStayInPast),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, hotel.ErrInvalidDiscountRange),
		errors.Is(err, hotel.ErrInvalidDiscountRate),
		errors.Is(err, hotel.ErrInvalidPricePerDay),
		errors.Is(err, hotel.ErrHotelNameRequired),
		errors.Is(err, account.ErrEmailRequired),
		errors.Is(err, account.ErrNameRequired),
		errors.Is(err, account.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
