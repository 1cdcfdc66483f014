package middleware

import (
	"net/http"

	"shoestore/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//PrincipalのroleがADMINかどうかを確認する。AuthJWTの後に積む。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(http.StatusUnauthorized, "unauthorized"))
			}

			//USERは拒否、ADMINだけ許可
			if principal.Role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON(http.StatusForbidden, "admin only"))
			}

			return next(c)
		}
	}
}
