package usecase

import (
	"context"
	"testing"
	"time"

	"shoestore/internal/domain/apperr"
	"shoestore/internal/domain/model"
	repo "shoestore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	tx        *stubTxManager
	cart      *MockCartReconciler
	orders    *MockOrderRepository
	details   *MockOrderDetailRepository
	products  *MockProductRepository
	users     *MockUserRepository
	inventory *MockInventoryRepository
	cartItems *MockCartItemRepository

	uc *OrderUsecase
}

// トランザクション内外で同じモックを見せる
func newOrderFixture() *orderFixture {
	f := &orderFixture{
		cart:      new(MockCartReconciler),
		orders:    new(MockOrderRepository),
		details:   new(MockOrderDetailRepository),
		products:  new(MockProductRepository),
		users:     new(MockUserRepository),
		inventory: new(MockInventoryRepository),
		cartItems: new(MockCartItemRepository),
	}
	f.tx = &stubTxManager{repos: &stubTxRepos{
		users:        f.users,
		products:     f.products,
		inventory:    f.inventory,
		carts:        new(MockCartRepository),
		cartItems:    f.cartItems,
		orders:       f.orders,
		orderDetails: f.details,
	}}
	f.uc = NewOrderUsecase(f.tx, f.cart, f.orders, f.details, f.products, f.users)
	return f
}

// =====================
// Create
// =====================

func TestOrderUsecase_Create_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	userID := int64(1)
	cart := model.Cart{ID: 10, UserID: userID}
	items := []model.CartItem{
		{ID: 100, CartID: 10, ProductID: 1, Quantity: 2},
		{ID: 101, CartID: 10, ProductID: 2, Quantity: 1},
	}

	f.cart.On("ReconciledCart", mock.Anything, userID).Return(cart, items, nil)

	f.products.On("FindActiveByIDsForUpdate", mock.Anything, []int64{1, 2}).Return([]model.Product{
		{ID: 1, Name: "Nike Air Max 90", Price: 3500000, Stock: 50, Status: model.ProductStatusActive},
		{ID: 2, Name: "Adidas Ultraboost 22", Price: 4200000, Stock: 35, Status: model.ProductStatusActive},
	}, nil)

	f.inventory.On("DecrementStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)
	f.inventory.On("DecrementStockIfEnough", mock.Anything, int64(2), int64(1)).Return(true, nil)

	wantTotal := int64(3500000*2 + 4200000)

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == userID && o.Total == wantTotal
	})).Return(int64(55), nil)

	// 価格は注文時点のスナップショット
	f.details.On("CreateBulk", mock.Anything, int64(55), mock.MatchedBy(func(ds []model.OrderDetail) bool {
		return len(ds) == 2 &&
			ds[0].PriceSnapshot == 3500000 && ds[0].Total == 7000000 &&
			ds[1].PriceSnapshot == 4200000 && ds[1].Total == 4200000
	})).Return(nil)

	f.users.On("AddMoneySpent", mock.Anything, userID, wantTotal).Return(nil)
	f.users.On("UpdatePhone", mock.Anything, userID, "0901234567").Return(nil)
	f.cartItems.On("DeleteByCartID", mock.Anything, int64(10)).Return(nil)

	out, err := f.uc.Create(ctx, userID, "0901234567")
	assert.NoError(t, err)
	assert.Equal(t, int64(55), out.ID)
	assert.Equal(t, wantTotal, out.Total)
	assert.Equal(t, "0901234567", out.Phone)
	assert.Len(t, out.Items, 2)
	// レスポンスの在庫は減算後の値
	assert.Equal(t, int64(48), out.Items[0].Product.Stock)
	assert.False(t, f.tx.rolledBack)

	f.orders.AssertExpectations(t)
	f.details.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.cartItems.AssertExpectations(t)
}

func TestOrderUsecase_Create_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.cart.On("ReconciledCart", mock.Anything, int64(1)).
		Return(model.Cart{ID: 10, UserID: 1}, []model.CartItem{}, nil)

	_, err := f.uc.Create(ctx, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.EmptyCart))

	// トランザクション自体が始まらない
	f.products.AssertNotCalled(t, "FindActiveByIDsForUpdate", mock.Anything, mock.Anything)
}

// ロック付き再取得で消えていた商品はまとめて報告する
func TestOrderUsecase_Create_ProductsUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	cart := model.Cart{ID: 10, UserID: 1}
	items := []model.CartItem{
		{ID: 100, CartID: 10, ProductID: 1, Quantity: 1},
		{ID: 101, CartID: 10, ProductID: 2, Quantity: 1},
		{ID: 102, CartID: 10, ProductID: 3, Quantity: 1},
	}

	f.cart.On("ReconciledCart", mock.Anything, int64(1)).Return(cart, items, nil)
	f.products.On("FindActiveByIDsForUpdate", mock.Anything, []int64{1, 2, 3}).Return([]model.Product{
		{ID: 2, Name: "Vans Old Skool", Price: 1800000, Stock: 75, Status: model.ProductStatusActive},
	}, nil)

	_, err := f.uc.Create(ctx, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.ProductsUnavailable))
	assert.Equal(t, "products no longer available: 1, 3", apperr.MessageOf(err))
	assert.True(t, f.tx.rolledBack)

	// 在庫も注文も一切動かない
	f.inventory.AssertNotCalled(t, "DecrementStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 最初の在庫不足で全体を中断する（部分注文はしない）
func TestOrderUsecase_Create_InsufficientStockAborts(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	cart := model.Cart{ID: 10, UserID: 1}
	items := []model.CartItem{
		{ID: 100, CartID: 10, ProductID: 1, Quantity: 2},
		{ID: 101, CartID: 10, ProductID: 2, Quantity: 5},
		{ID: 102, CartID: 10, ProductID: 3, Quantity: 1},
	}

	f.cart.On("ReconciledCart", mock.Anything, int64(1)).Return(cart, items, nil)
	f.products.On("FindActiveByIDsForUpdate", mock.Anything, []int64{1, 2, 3}).Return([]model.Product{
		{ID: 1, Name: "Nike Dunk Low", Price: 3200000, Stock: 40, Status: model.ProductStatusActive},
		{ID: 2, Name: "Jordan 1 Retro High", Price: 5500000, Stock: 3, Status: model.ProductStatusActive},
		{ID: 3, Name: "Adidas Samba", Price: 2400000, Stock: 70, Status: model.ProductStatusActive},
	}, nil)

	f.inventory.On("DecrementStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)
	f.inventory.On("DecrementStockIfEnough", mock.Anything, int64(2), int64(5)).Return(false, nil)

	_, err := f.uc.Create(ctx, 1, "")
	assert.True(t, apperr.IsKind(err, apperr.InsufficientStock))
	assert.Equal(t, `insufficient stock for "Jordan 1 Retro High": 3 available, 5 requested`, apperr.MessageOf(err))
	assert.True(t, f.tx.rolledBack)

	// 不足が出た後の商品には触れない
	f.inventory.AssertNotCalled(t, "DecrementStockIfEnough", mock.Anything, int64(3), mock.Anything)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.cartItems.AssertNotCalled(t, "DeleteByCartID", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "AddMoneySpent", mock.Anything, mock.Anything, mock.Anything)
}

// 電話番号が空なら更新せず、既存の番号をレスポンスに使う
func TestOrderUsecase_Create_EmptyPhoneKeepsExisting(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	cart := model.Cart{ID: 10, UserID: 1}
	items := []model.CartItem{{ID: 100, CartID: 10, ProductID: 1, Quantity: 1}}

	f.cart.On("ReconciledCart", mock.Anything, int64(1)).Return(cart, items, nil)
	f.products.On("FindActiveByIDsForUpdate", mock.Anything, []int64{1}).Return([]model.Product{
		{ID: 1, Name: "Puma Suede Classic", Price: 2000000, Stock: 60, Status: model.ProductStatusActive},
	}, nil)
	f.inventory.On("DecrementStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).Return(int64(7), nil)
	f.details.On("CreateBulk", mock.Anything, int64(7), mock.Anything).Return(nil)
	f.users.On("AddMoneySpent", mock.Anything, int64(1), int64(2000000)).Return(nil)
	f.cartItems.On("DeleteByCartID", mock.Anything, int64(10)).Return(nil)

	f.users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Phone: "0987654321"}, nil)

	out, err := f.uc.Create(ctx, 1, "  ")
	assert.NoError(t, err)
	assert.Equal(t, "0987654321", out.Phone)

	f.users.AssertNotCalled(t, "UpdatePhone", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// GetByID
// =====================

func TestOrderUsecase_GetByID_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	productID := int64(1)
	f.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, UserID: 1, Total: 3500000, CreatedAt: time.Now()}, nil)
	f.details.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderDetail{
		{ID: 1, OrderID: 55, ProductID: &productID, Quantity: 1, PriceSnapshot: 3500000, Total: 3500000},
	}, nil)
	f.products.On("FindByIDAny", mock.Anything, productID).
		Return(model.Product{ID: 1, Name: "Nike Air Max 90", Price: 3600000, Stock: 49}, nil)
	f.users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Phone: "0901234567"}, nil)

	out, err := f.uc.GetByID(ctx, 55, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(55), out.ID)
	assert.Len(t, out.Items, 1)
	// スナップショットは注文時点のまま。カタログの現価格とは独立。
	assert.Equal(t, int64(3500000), out.Items[0].PriceSnapshot)
	assert.Equal(t, int64(3600000), out.Items[0].Product.Price)
}

func TestOrderUsecase_GetByID_NotOwner(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, UserID: 2}, nil)

	_, err := f.uc.GetByID(ctx, 55, 1)
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	f.details.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.GetByID(ctx, 99, 1)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

// 商品が物理削除された注文はプレースホルダで描画する
func TestOrderUsecase_GetByID_DeletedProductPlaceholder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	productID := int64(77)
	f.orders.On("FindByID", mock.Anything, int64(55)).
		Return(model.Order{ID: 55, UserID: 1, Total: 1500000}, nil)
	f.details.On("ListByOrderID", mock.Anything, int64(55)).Return([]model.OrderDetail{
		{ID: 1, OrderID: 55, ProductID: &productID, Quantity: 1, PriceSnapshot: 1500000, Total: 1500000},
	}, nil)
	f.products.On("FindByIDAny", mock.Anything, productID).Return(model.Product{}, repo.ErrNotFound)
	f.users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)

	out, err := f.uc.GetByID(ctx, 55, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Deleted product", out.Items[0].Product.Name)
	assert.Equal(t, int64(1500000), out.Items[0].Product.Price)
	assert.Equal(t, int64(0), out.Items[0].Product.Stock)
}

// =====================
// ListByUser
// =====================

func TestOrderUsecase_ListByUser_Paginates(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("ListByUserID", mock.Anything, int64(1), 1, 10).Return([]model.Order{
		{ID: 2, UserID: 1, Total: 100},
		{ID: 1, UserID: 1, Total: 200},
	}, int64(12), nil)
	f.details.On("ListByOrderID", mock.Anything, mock.AnythingOfType("int64")).
		Return([]model.OrderDetail{}, nil)
	f.users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)

	out, err := f.uc.ListByUser(ctx, 1, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(12), out.Pagination.TotalItems)
	assert.Equal(t, int64(2), out.Pagination.TotalPages)
}
