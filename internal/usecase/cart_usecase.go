package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"shoestore/internal/domain/apperr"
	"shoestore/internal/domain/model"
	repo "shoestore/internal/repository"
)

type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartItemView struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Total     int64  `json:"total"`
	ImageURL  string `json:"image_url"`
}

// Messagesにはリコンサイルで静かに消された明細の説明が入る。
type CartOutput struct {
	Items    []CartItemView `json:"items"`
	Messages []string       `json:"messages"`
	Total    int64          `json:"total"`
}

// GetCart はカート取得（無ければ作って空を返す）。
// 返す前に必ずリコンサイルする。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return u.buildCartOutput(ctx, cart.ID)
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, productID int64, qty int64) (CartOutput, error) {
	if productID <= 0 {
		return CartOutput{}, apperr.New(apperr.Validation, "invalid product id")
	}
	if qty < 1 {
		return CartOutput{}, apperr.New(apperr.Validation, "quantity must be >= 1")
	}

	// 非公開・不存在はどちらもNotFound
	p, err := u.productRepo.FindActiveByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	// カート内の既存数量と合わせて在庫を超えないか
	var existingQty int64
	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err == nil {
		existingQty = existing.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	// 判定は加算ではなく引き算で行う。qtyが極端に大きくても
	// existingQty+qty のオーバーフローで判定をすり抜けない。
	if qty > p.Stock-existingQty {
		requested := existingQty + qty
		if requested < qty {
			requested = math.MaxInt64
		}
		return CartOutput{}, apperr.Newf(apperr.OutOfStock,
			"not enough stock for %q: %d available, %d requested", p.Name, p.Stock, requested)
	}

	if err := u.cartItemRepo.UpsertAdd(ctx, cart.ID, productID, qty); err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return u.buildCartOutput(ctx, cart.ID)
}

// UpdateItem は数量の絶対値指定。在庫は新しい数量で再チェック。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, productID int64, qty int64) (CartOutput, error) {
	if productID <= 0 {
		return CartOutput{}, apperr.New(apperr.Validation, "invalid product id")
	}
	if qty < 1 {
		return CartOutput{}, apperr.New(apperr.Validation, "quantity must be >= 1")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "item not in cart")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "item not in cart")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	p, err := u.productRepo.FindActiveByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	if qty > p.Stock {
		return CartOutput{}, apperr.Newf(apperr.OutOfStock,
			"not enough stock for %q: %d available, %d requested", p.Name, p.Stock, qty)
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return u.buildCartOutput(ctx, cart.ID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) (CartOutput, error) {
	if productID <= 0 {
		return CartOutput{}, apperr.New(apperr.Validation, "invalid product id")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "item not in cart")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartOutput{}, apperr.New(apperr.NotFound, "item not in cart")
	}
	if err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		return CartOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	return u.buildCartOutput(ctx, cart.ID)
}

// ReconciledCart は注文作成の入口で使う。リコンサイル後に残った明細を返す。
func (u *CartUsecase) ReconciledCart(ctx context.Context, userID int64) (model.Cart, []model.CartItem, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, nil, apperr.Wrap(apperr.Internal, "db error", err)
	}

	kept, _, err := u.reconcile(ctx, cart.ID)
	if err != nil {
		return model.Cart{}, nil, err
	}

	items := make([]model.CartItem, 0, len(kept))
	for _, k := range kept {
		items = append(items, k.item)
	}
	return cart, items, nil
}

type reconciledItem struct {
	item    model.CartItem
	product model.Product
}

// reconcile は商品が消えた/非公開になった明細をカートから削除し、
// 削除した分のメッセージを返す。残った明細は商品付きで返す。
func (u *CartUsecase) reconcile(ctx context.Context, cartID int64) ([]reconciledItem, []string, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "db error", err)
	}

	kept := make([]reconciledItem, 0, len(items))
	messages := []string{}

	for _, it := range items {
		p, err := u.productRepo.FindByIDAny(ctx, it.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, nil, apperr.Wrap(apperr.Internal, "db error", err)
		}

		if errors.Is(err, repo.ErrNotFound) || !p.IsActive() {
			// 商品が消えている/非公開。明細を消してメッセージで知らせる。
			if err := u.cartItemRepo.DeleteByID(ctx, it.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
				return nil, nil, apperr.Wrap(apperr.Internal, "db error", err)
			}

			name := fmt.Sprintf("#%d", it.ProductID)
			if p.Name != "" {
				name = fmt.Sprintf("%q", p.Name)
			}
			messages = append(messages, fmt.Sprintf("Product %s is no longer available", name))
			continue
		}

		kept = append(kept, reconciledItem{item: it, product: p})
	}

	return kept, messages, nil
}

func (u *CartUsecase) buildCartOutput(ctx context.Context, cartID int64) (CartOutput, error) {
	kept, messages, err := u.reconcile(ctx, cartID)
	if err != nil {
		return CartOutput{}, err
	}

	views := make([]CartItemView, 0, len(kept))
	var total int64

	for _, k := range kept {
		lineTotal := k.product.Price * k.item.Quantity
		views = append(views, CartItemView{
			ID:        k.item.ID,
			ProductID: k.product.ID,
			Name:      k.product.Name,
			Price:     k.product.Price,
			Quantity:  k.item.Quantity,
			Total:     lineTotal,
			ImageURL:  k.product.ImageURL,
		})
		total += lineTotal
	}

	return CartOutput{Items: views, Messages: messages, Total: total}, nil
}
