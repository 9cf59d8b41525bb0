package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api/middleware"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/application"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
)

type AccountHandler struct {
	service AccountServiceInterface
}

func NewAccountHandler(s AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: s}
}

type RegisterAccountRequest struct {
	Email string `json:"email" validate:"required,email" example:"guest@example.com"`
	Name  string `json:"name" validate:"required" example:"山田 太郎"`
	Role  string `json:"role" validate:"required,oneof=guest owner" example:"guest"`
}

type AccountResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email     string    `json:"email" example:"guest@example.com"`
	Name      string    `json:"name" example:"山田 太郎"`
	Role      string    `json:"role" example:"guest"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID: a.ID, Email: a.Email, Name: a.Name,
		Role: string(a.Role), CreatedAt: a.CreatedAt,
	}
}

// Register godoc
// @Summary アカウントを登録
// @Description ゲストまたはオーナーのアカウントを登録します
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body RegisterAccountRequest true "アカウント情報"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "メールアドレスが登録済み"
// @Router /accounts [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.RegisterAccount(c.Request().Context(), application.RegisterAccountInput{
		Email: req.Email,
		Name:  req.Name,
		Role:  account.Role(req.Role),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toAccountResponse(a))
}

// Me godoc
// @Summary 自分のアカウントを取得
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountResponse
// @Failure 401 {object} map[string]string
// @Router /accounts/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	a, err := h.service.GetAccount(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(a))
}
