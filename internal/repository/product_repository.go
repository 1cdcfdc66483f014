package repository

import (
	"context"
	"errors"

	"shoestore/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// ユニーク制約違反（email重複など）
	ErrDuplicateKey = errors.New("duplicate key")
)

// 一覧検索の条件
type ProductListQuery struct {
	Page     int
	Limit    int
	Keyword  string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
}

// 商品の永続化だけを約束。
type ProductRepository interface {
	// 公開（ACTIVE）商品のみ
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)

	// 管理・リコンサイル用。状態を問わず取得する。
	FindByIDAny(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	// ソフトデリート（status=HIDDEN）
	Hide(ctx context.Context, id int64) error

	// 注文トランザクション内での再取得。行ロック付き・ACTIVEのみ。
	FindActiveByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Product, error)
}
