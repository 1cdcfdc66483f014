package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"shoestore/internal/domain/apperr"
	"shoestore/internal/domain/model"
	repo "shoestore/internal/repository"
)

// 一覧系レスポンス共通のページング情報
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

func newPagination(page int, limit int, totalItems int64) Pagination {
	totalPages := (totalItems + int64(limit) - 1) / int64(limit)
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxKeywordLen    = 100
)

// 範囲外のpage/limitはエラーにせず丸める
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ListProductsInput struct {
	Keyword  string
	MinPrice *int64
	MaxPrice *int64
	Sort     string
	Page     int
	Limit    int
}

type ProductListOutput struct {
	Items      []model.Product `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	page := clampPage(in.Page)
	limit := clampLimit(in.Limit)

	// バイトではなくルーン数で切る。マルチバイト文字の途中で切ると
	// 不正なUTF-8になり、クエリパラメータとして通らない。
	keyword := strings.TrimSpace(in.Keyword)
	if utf8.RuneCountInString(keyword) > maxKeywordLen {
		keyword = string([]rune(keyword)[:maxKeywordLen])
	}

	sort := in.Sort
	switch sort {
	case "price_asc", "price_desc":
	default:
		sort = "newest"
	}

	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, apperr.New(apperr.Validation, "minPrice must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, apperr.New(apperr.Validation, "maxPrice must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, apperr.New(apperr.Validation, "minPrice must be <= maxPrice")
	}

	items, total, err := u.productRepo.ListActive(ctx, repo.ProductListQuery{
		Page:     page,
		Limit:    limit,
		Keyword:  keyword,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     sort,
	})
	if err != nil {
		return ProductListOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return ProductListOutput{
		Items:      items,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// 公開商品の詳細。HIDDENはNotFound。
func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, apperr.New(apperr.Validation, "invalid product id")
	}

	p, err := u.productRepo.FindActiveByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, apperr.Wrap(apperr.Internal, "db error", err)
	}
	return p, nil
}

// 管理用の詳細。非公開でも返す。
func (u *ProductUsecase) AdminGetByID(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, apperr.New(apperr.Validation, "invalid product id")
	}

	p, err := u.productRepo.FindByIDAny(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, apperr.Wrap(apperr.Internal, "db error", err)
	}
	return p, nil
}

type AdminProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int64
	ImageURL    string
	Hidden      bool
}

func (in AdminProductInput) status() model.ProductStatus {
	if in.Hidden {
		return model.ProductStatusHidden
	}
	return model.ProductStatusActive
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, in AdminProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, apperr.New(apperr.Validation, "name is required")
	}
	if in.Price <= 0 {
		return model.Product{}, apperr.New(apperr.Validation, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, apperr.New(apperr.Validation, "stock must be >= 0")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      in.status(),
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return model.Product{}, apperr.Wrap(apperr.Internal, "db error", err)
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdate(ctx context.Context, productID int64, in AdminProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, apperr.New(apperr.Validation, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, apperr.New(apperr.Validation, "name is required")
	}
	if in.Price <= 0 {
		return model.Product{}, apperr.New(apperr.Validation, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, apperr.New(apperr.Validation, "stock must be >= 0")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      in.status(),
		ImageURL:    in.ImageURL,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return u.AdminGetByID(ctx, productID)
}

// ソフトデリート。既存の注文・カートから参照され得るので行は消さない。
func (u *ProductUsecase) AdminRemove(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return apperr.New(apperr.Validation, "invalid product id")
	}

	err := u.productRepo.Hide(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "db error", err)
	}
	return nil
}
