package usecase

import (
	"context"
	"testing"

	"shoestore/internal/domain/model"
	repo "shoestore/internal/repository"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) AddMoneySpent(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePhone(ctx context.Context, userID int64, phone string) error {
	args := m.Called(ctx, userID, phone)
	return args.Error(0)
}

// =====================
// Mock: AuthValidator
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateRegister(fullName string, email string, password string, phone string) error {
	args := m.Called(fullName, email, password, phone)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateLogin(email string, password string) error {
	args := m.Called(email, password)
	return args.Error(0)
}

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]model.Product)
	total, _ := args.Get(1).(int64)
	return ps, total, args.Error(2)
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) FindByIDAny(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Hide(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindActiveByIDsForUpdate(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

// =====================
// Mock: CartRepository / CartItemRepository
// =====================

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartItemRepository) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartItemRepository) UpsertAdd(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *MockCartItemRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// =====================
// Mock: InventoryRepository
// =====================

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) DecrementStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

// =====================
// Mock: OrderRepository / OrderDetailRepository
// =====================

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

type MockOrderDetailRepository struct {
	mock.Mock
}

func (m *MockOrderDetailRepository) CreateBulk(ctx context.Context, orderID int64, details []model.OrderDetail) error {
	args := m.Called(ctx, orderID, details)
	return args.Error(0)
}

func (m *MockOrderDetailRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	ds, _ := args.Get(0).([]model.OrderDetail)
	return ds, args.Error(1)
}

// =====================
// Mock: CartReconciler
// =====================

type MockCartReconciler struct {
	mock.Mock
}

func (m *MockCartReconciler) ReconciledCart(ctx context.Context, userID int64) (model.Cart, []model.CartItem, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	items, _ := args.Get(1).([]model.CartItem)
	return c, items, args.Error(2)
}

// =====================
// Stub: TransactionManager
// =====================

// モックのrepo一式をそのまま返すTxRepos。
// トランザクション境界の中で何が呼ばれたかをモック側で検証する。
type stubTxRepos struct {
	users        *MockUserRepository
	products     *MockProductRepository
	inventory    *MockInventoryRepository
	carts        *MockCartRepository
	cartItems    *MockCartItemRepository
	orders       *MockOrderRepository
	orderDetails *MockOrderDetailRepository
}

func (s *stubTxRepos) Users() repo.UserRepository               { return s.users }
func (s *stubTxRepos) Products() repo.ProductRepository         { return s.products }
func (s *stubTxRepos) Inventory() repo.InventoryRepository      { return s.inventory }
func (s *stubTxRepos) Carts() repo.CartRepository               { return s.carts }
func (s *stubTxRepos) CartItems() repo.CartItemRepository       { return s.cartItems }
func (s *stubTxRepos) Orders() repo.OrderRepository             { return s.orders }
func (s *stubTxRepos) OrderDetails() repo.OrderDetailRepository { return s.orderDetails }

// fnをそのまま実行するTransactionManager。エラーが返ったかを記録する。
type stubTxManager struct {
	repos      *stubTxRepos
	rolledBack bool
}

func (s *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	err := fn(s.repos)
	if err != nil {
		s.rolledBack = true
	}
	return err
}

// =====================
// Helper
// =====================

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}
