package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/domain/account"
)

// actorIDKey はコンテキストに格納するアクターIDのキー
const actorIDKey = "actor_id"

// BearerAuth はAuthorizationヘッダーのベアラートークンをアカウントIDに解決する
// ミドルウェア。トークンの発行・失効はresolver側（Redis）の責務で、ここでは
// 解決だけを行う。無効なトークンは401を返す
func BearerAuth(resolver account.TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}

			accountID, err := resolver.ResolveAccountID(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, account.ErrUnauthorized.Error())
			}

			c.Set(actorIDKey, accountID)
			return next(c)
		}
	}
}

// ActorID はコンテキストから認証済みアカウントIDを取り出す
// BearerAuthを通っていないルートでは空文字を返す
func ActorID(c echo.Context) string {
	if id, ok := c.Get(actorIDKey).(string); ok {
		return id
	}
	return ""
}
