package repository

import (
	"context"

	"shoestore/internal/domain/model"
)

// ユーザーの保存・取得を約束。見つからない場合は (nil, nil) を返す。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// 注文確定用。累計購入額の加算と配送先電話番号の更新。
	AddMoneySpent(ctx context.Context, userID int64, amount int64) error
	UpdatePhone(ctx context.Context, userID int64, phone string) error
}
