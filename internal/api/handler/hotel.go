package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api/middleware"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/application"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/hotel"
)

type HotelHandler struct {
	service HotelServiceInterface
}

func NewHotelHandler(s HotelServiceInterface) *HotelHandler {
	return &HotelHandler{service: s}
}

type CreateHotelRequest struct {
	Name        string `json:"name" validate:"required" example:"海辺のホテル"`
	Description string `json:"description" example:"オーシャンビューの宿"`
	District    string `json:"district" example:"那覇市"`
	PricePerDay int64  `json:"price_per_day" validate:"gte=0" example:"12000"`
}

type HotelResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID     string    `json:"owner_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string    `json:"name" example:"海辺のホテル"`
	Description string    `json:"description"`
	District    string    `json:"district"`
	PricePerDay int64     `json:"price_per_day" example:"12000"`
	CreatedAt   time.Time `json:"created_at"`
}

func toHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID: h.ID, OwnerID: h.OwnerID, Name: h.Name,
		Description: h.Description, District: h.District,
		PricePerDay: h.PricePerDay, CreatedAt: h.CreatedAt,
	}
}

type DiscountPeriodRequest struct {
	StartDate time.Time `json:"start_date" validate:"required" example:"2025-07-01T00:00:00Z"`
	EndDate   time.Time `json:"end_date" validate:"required" example:"2025-07-10T00:00:00Z"`
	Rate      int       `json:"rate" validate:"gte=0,lte=100" example:"20"`
}

type DiscountPeriodResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	HotelID   string    `json:"hotel_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Rate      int       `json:"rate" example:"20"`
	CreatedAt time.Time `json:"created_at"`
}

func toDiscountPeriodResponse(d *hotel.DiscountPeriod) DiscountPeriodResponse {
	return DiscountPeriodResponse{
		ID: d.ID, HotelID: d.HotelID,
		StartDate: d.StartDate, EndDate: d.EndDate,
		Rate: d.Rate, CreatedAt: d.CreatedAt,
	}
}

// Create godoc
// @Summary ホテルを作成
// @Description 認証済みアカウントをオーナーとして新しいホテルを登録します
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHotelRequest true "ホテル情報"
// @Success 201 {object} HotelResponse
// @Failure 400 {object} map[string]string
// @Router /hotels [post]
func (h *HotelHandler) Create(c echo.Context) error {
	var req CreateHotelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := h.service.CreateHotel(c.Request().Context(), application.CreateHotelInput{
		OwnerID:     middleware.ActorID(c),
		Name:        req.Name,
		Description: req.Description,
		District:    req.District,
		PricePerDay: req.PricePerDay,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toHotelResponse(created))
}

// GetByID godoc
// @Summary ホテルを取得
// @Description ホテルと割引期間一覧のスナップショットを返します（キャッシュ経由、表示用）
// @Tags hotels
// @Produce json
// @Param id path string true "ホテルID"
// @Success 200 {object} HotelSnapshotResponse
// @Failure 404 {object} map[string]string
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetByID(c echo.Context) error {
	snapshot, err := h.service.GetHotelSnapshot(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	periods := make([]DiscountPeriodResponse, len(snapshot.DiscountPeriods))
	for i, d := range snapshot.DiscountPeriods {
		periods[i] = toDiscountPeriodResponse(d)
	}
	return c.JSON(http.StatusOK, HotelSnapshotResponse{
		Hotel:           toHotelResponse(snapshot.Hotel),
		DiscountPeriods: periods,
	})
}

// HotelSnapshotResponse はホテルと割引期間のスナップショット
type HotelSnapshotResponse struct {
	Hotel           HotelResponse            `json:"hotel"`
	DiscountPeriods []DiscountPeriodResponse `json:"discount_periods"`
}

// List godoc
// @Summary ホテル一覧を取得
// @Tags hotels
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} HotelResponse
// @Router /hotels [get]
func (h *HotelHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	hotels, err := h.service.ListHotels(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]HotelResponse, len(hotels))
	for i, item := range hotels {
		resp[i] = toHotelResponse(item)
	}
	return c.JSON(http.StatusOK, resp)
}

// AddDiscountPeriod godoc
// @Summary 割引期間を追加
// @Description ホテルに割引期間を追加します（ホテルオーナーのみ）。既存期間との重複は許容されます
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ホテルID"
// @Param request body DiscountPeriodRequest true "割引期間"
// @Success 201 {object} DiscountPeriodResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /hotels/{id}/discounts [post]
func (h *HotelHandler) AddDiscountPeriod(c echo.Context) error {
	var req DiscountPeriodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	d, err := h.service.AddDiscountPeriod(c.Request().Context(), application.AddDiscountPeriodInput{
		HotelID:   c.Param("id"),
		ActorID:   middleware.ActorID(c),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rate:      req.Rate,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toDiscountPeriodResponse(d))
}

// RemoveDiscountPeriod godoc
// @Summary 割引期間を削除
// @Description 割引期間を削除します（ホテルオーナーのみ）。日付変更は提供せず、削除と再作成で代替します
// @Tags hotels
// @Security BearerAuth
// @Param id path string true "ホテルID"
// @Param periodId path string true "割引期間ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /hotels/{id}/discounts/{periodId} [delete]
func (h *HotelHandler) RemoveDiscountPeriod(c echo.Context) error {
	if err := h.service.RemoveDiscountPeriod(c.Request().Context(), c.Param("periodId"), middleware.ActorID(c)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListDiscountPeriods godoc
// @Summary 割引期間一覧を取得
// @Description ホテルの割引期間を登録順で返します
// @Tags hotels
// @Produce json
// @Param id path string true "ホテルID"
// @Success 200 {array} DiscountPeriodResponse
// @Failure 404 {object} map[string]string
// @Router /hotels/{id}/discounts [get]
func (h *HotelHandler) ListDiscountPeriods(c echo.Context) error {
	periods, err := h.service.ListDiscountPeriods(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]DiscountPeriodResponse, len(periods))
	for i, d := range periods {
		resp[i] = toDiscountPeriodResponse(d)
	}
	return c.JSON(http.StatusOK, resp)
}
