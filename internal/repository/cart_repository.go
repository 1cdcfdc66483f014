package repository

import (
	"context"

	"shoestore/internal/domain/model"
)

type CartRepository interface {
	// 初回アクセス時に作る（1ユーザー1カート）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
}
