package handler

import (
	"net/http"
	"strconv"

	"shoestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 商品管理API（ADMINのみ）
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc, adminMW echo.MiddlewareFunc) {
	e.POST("/products", h.create, authMW, adminMW)
	e.PUT("/products/:id", h.update, authMW, adminMW)
	e.DELETE("/products/:id", h.remove, authMW, adminMW)

	// 非公開商品も見える管理用の詳細
	e.GET("/admin/products/:id", h.detail, authMW, adminMW)
}

type adminProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	ImageURL    string `json:"image_url"`
	Hidden      bool   `json:"hidden"`
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req adminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	p, err := h.uc.AdminCreate(c.Request().Context(), usecase.AdminProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Hidden:      req.Hidden,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusCreated, "Product created.", p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	var req adminProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid body", StatusCode: http.StatusBadRequest})
	}

	p, err := h.uc.AdminUpdate(c.Request().Context(), id, usecase.AdminProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Hidden:      req.Hidden,
	})
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Product updated.", p)
}

func (h *AdminProductHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	if err := h.uc.AdminRemove(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "Product removed.", nil)
}

func (h *AdminProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid id", StatusCode: http.StatusBadRequest})
	}

	p, err := h.uc.AdminGetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, http.StatusOK, "OK", p)
}
