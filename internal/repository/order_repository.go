package repository

import (
	"context"

	"shoestore/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 新しい順
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
}

type OrderDetailRepository interface {
	CreateBulk(ctx context.Context, orderID int64, details []model.OrderDetail) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderDetail, error)
}
