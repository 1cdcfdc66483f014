package handler

import (
	"net/http"
	"strconv"

	"shoestore/internal/middleware"
	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/cart")
	g.Use(authMW)

	g.GET("", h.get)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.updateItem)
	g.DELETE("/items/:id", h.removeItem)
}

func (h *CartHandler) get(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	out, err := h.uc.GetCart(c.Request().Context(), principal.ID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out)
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

func (h *CartHandler) addItem(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.AddItem(c.Request().Context(), principal.ID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Item added to cart.", out)
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// :id はカート明細ではなく商品のID（カート内で商品は一意）
func (h *CartHandler) updateItem(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), principal.ID, productID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Cart item updated.", out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), principal.ID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Item removed from cart.", out)
}
