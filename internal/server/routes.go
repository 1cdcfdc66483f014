package server

import (
	"shoestore/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlers はルーティングに必要なハンドラ一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, authMW echo.MiddlewareFunc, adminMW echo.MiddlewareFunc) {
	h.Auth.RegisterRoutes(e, authMW)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, authMW, adminMW)
	h.Cart.RegisterRoutes(e, authMW)
	h.Order.RegisterRoutes(e, authMW)
}
