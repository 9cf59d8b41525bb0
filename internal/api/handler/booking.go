package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api/middleware"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/application"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	HotelID   string    `json:"hotel_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate time.Time `json:"start_date" validate:"required" example:"2025-07-01T00:00:00Z"`
	EndDate   time.Time `json:"end_date" validate:"required" example:"2025-07-04T00:00:00Z"`
}

type BookingResponse struct {
	ID         string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	HotelID    string    `json:"hotel_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	GuestID    string    `json:"guest_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalPrice int64     `json:"total_price" example:"250"`
	Status     string    `json:"status" example:"pending"`
	CreatedAt  time.Time `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, HotelID: b.HotelID, GuestID: b.GuestID,
		StartDate: b.StartDate, EndDate: b.EndDate,
		TotalPrice: b.TotalPrice, Status: string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func toBookingResponses(bookings []*booking.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return resp
}

// Create godoc
// @Summary 予約を作成
// @Description 指定期間のホテル予約をpending状態で作成します。合計金額はサーバー側で計算されます
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "期間が既存予約と重複"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		HotelID:   req.HotelID,
		GuestID:   middleware.ActorID(c),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListMine godoc
// @Summary 自分の予約一覧を取得
// @Description 認証済みゲストの予約一覧を作成日時の降順で取得します
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.ListGuestBookings(c.Request().Context(), middleware.ActorID(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルし、カレンダー枠を解放します（ゲスト本人のみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string "現在の状態からキャンセル不可"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.service.CancelBooking(c.Request().Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Confirm godoc
// @Summary 予約を確定
// @Description pending状態の予約を確定します（ホテルオーナーのみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c echo.Context) error {
	b, err := h.service.ConfirmBooking(c.Request().Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// CheckIn godoc
// @Summary チェックイン
// @Description confirmed状態の予約をチェックイン済みにします（ホテルオーナーのみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings/{id}/checkin [post]
func (h *BookingHandler) CheckIn(c echo.Context) error {
	b, err := h.service.CheckInBooking(c.Request().Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// CheckOut godoc
// @Summary チェックアウト
// @Description checked_in状態の予約をチェックアウト済みにします（ホテルオーナーのみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /bookings/{id}/checkout [post]
func (h *BookingHandler) CheckOut(c echo.Context) error {
	b, err := h.service.CheckOutBooking(c.Request().Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListForHotel godoc
// @Summary ホテルの予約一覧を取得
// @Description 指定ホテルの予約一覧を取得します（ホテルオーナーのみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ホテルID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Failure 403 {object} map[string]string
// @Router /hotels/{id}/bookings [get]
func (h *BookingHandler) ListForHotel(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.ListHotelBookings(c.Request().Context(), c.Param("id"), middleware.ActorID(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// ListReservationsForHotel godoc
// @Summary ホテルの今後の予約一覧を取得
// @Description 開始日が未来でキャンセルされていない予約だけを返します（ホテルオーナーのみ）
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ホテルID"
// @Success 200 {array} BookingResponse
// @Failure 403 {object} map[string]string
// @Router /hotels/{id}/reservations [get]
func (h *BookingHandler) ListReservationsForHotel(c echo.Context) error {
	bookings, err := h.service.ListHotelReservations(c.Request().Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

type RatingEligibilityResponse struct {
	CanRate bool `json:"can_rate"`
}

// RatingEligibility godoc
// @Summary ホテル評価の可否を取得
// @Description 認証済みゲストが指定ホテルを評価できるか（チェックイン以降の滞在を持つか）を返します
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ホテルID"
// @Success 200 {object} RatingEligibilityResponse
// @Router /hotels/{id}/rating-eligibility [get]
func (h *BookingHandler) RatingEligibility(c echo.Context) error {
	canRate, err := h.service.CanRateHotel(c.Request().Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, RatingEligibilityResponse{CanRate: canRate})
}
