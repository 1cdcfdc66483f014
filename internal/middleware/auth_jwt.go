package middleware

import (
	"net/http"
	"strings"

	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxPrincipalKey = "principal"

	accessTokenCookie = "accessToken"
)

// ミドルウェアがAuthUsecaseに依存する約束
type TokenValidator interface {
	ValidateToken(token string) (usecase.Principal, error)
}

// bearerヘッダまたはaccessToken cookieのJWTを検証するミドルウェア。
func AuthJWT(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken := extractToken(c)
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(http.StatusUnauthorized, "unauthorized"))
			}

			principal, err := validator.ValidateToken(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON(http.StatusUnauthorized, "unauthorized"))
			}

			//contextへ保存
			c.Set(CtxPrincipalKey, principal)
			return next(c)
		}
	}
}

// AuthorizationヘッダのBearerを優先し、無ければcookieを見る。
func extractToken(c echo.Context) string {
	authz := c.Request().Header.Get("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie(accessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// PrincipalFrom はAuthJWTが保存したPrincipalを取り出す。
func PrincipalFrom(c echo.Context) (usecase.Principal, bool) {
	p, ok := c.Get(CtxPrincipalKey).(usecase.Principal)
	return p, ok
}

func errorJSON(status int, message string) map[string]any {
	return map[string]any{
		"success":    false,
		"message":    message,
		"statusCode": status,
	}
}
