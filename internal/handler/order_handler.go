package handler

import (
	"net/http"
	"strconv"

	"shoestore/internal/middleware"
	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/orders")
	g.Use(authMW)

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
}

type createOrderRequest struct {
	Phone string `json:"phone"`
}

func (h *OrderHandler) create(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.Create(c.Request().Context(), principal.ID, req.Phone)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "Order placed successfully.", out)
}

func (h *OrderHandler) list(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	// 範囲外はユースケース側でクランプするので変換エラーは無視してよい
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.ListByUser(c.Request().Context(), principal.ID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out)
}

func (h *OrderHandler) getByID(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	out, err := h.uc.GetByID(c.Request().Context(), orderID, principal.ID)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out)
}
