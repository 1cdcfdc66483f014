package handler

import (
	"net/http"

	"shoestore/internal/domain/apperr"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorBody struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`

	// 500のときだけ。サポート問い合わせ用の照合ID。
	ReferenceID string `json:"reference_id,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, successBody{Success: true, Message: message, Data: data})
}

// writeError はドメインエラーのKindをHTTPステータスへ変換する唯一の場所。
// 未知のエラーは詳細をログにだけ残し、クライアントには照合IDだけ返す。
func writeError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	status := statusOf(kind)

	if status == http.StatusInternalServerError {
		refID := uuid.NewString()
		req := c.Request()
		c.Logger().Errorf("internal error ref=%s method=%s path=%s: %v", refID, req.Method, req.URL.Path, err)
		return c.JSON(status, errorBody{
			Message:     "Internal server error. Please contact support with the reference id.",
			StatusCode:  status,
			ReferenceID: refID,
		})
	}

	return c.JSON(status, errorBody{
		Message:    apperr.MessageOf(err),
		StatusCode: status,
	})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.OutOfStock, apperr.InsufficientStock, apperr.EmptyCart:
		return http.StatusBadRequest
	case apperr.InvalidCredentials, apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound, apperr.ProductsUnavailable:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
