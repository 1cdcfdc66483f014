package handler

import (
	"net/http"
	"strconv"

	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page/limitは不正値でもエラーにせず丸める
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var minPrice *int64
	if v := c.QueryParam("minPrice"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid minPrice", StatusCode: http.StatusBadRequest})
		}
		minPrice = &x
	}

	var maxPrice *int64
	if v := c.QueryParam("maxPrice"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid maxPrice", StatusCode: http.StatusBadRequest})
		}
		maxPrice = &x
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Keyword:  c.QueryParam("keyword"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.QueryParam("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", p)
}
