package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shoestore/internal/domain/apperr"
	"shoestore/internal/domain/model"
	repo "shoestore/internal/repository"
)

// 物理削除された商品の明細を描画するときの名前
const deletedProductName = "Deleted product"

// 注文作成の入口でカートをリコンサイルするための約束。
// CartUsecaseが実装する。
type CartReconciler interface {
	ReconciledCart(ctx context.Context, userID int64) (model.Cart, []model.CartItem, error)
}

type OrderUsecase struct {
	tx          repo.TransactionManager
	cart        CartReconciler
	orderRepo   repo.OrderRepository
	detailRepo  repo.OrderDetailRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	cart CartReconciler,
	orderRepo repo.OrderRepository,
	detailRepo repo.OrderDetailRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		cart:        cart,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type OrderProductView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	ImageURL string `json:"image_url"`
}

type OrderDetailView struct {
	Product       OrderProductView `json:"product"`
	Quantity      int64            `json:"quantity"`
	PriceSnapshot int64            `json:"price_snapshot"`
	Total         int64            `json:"total"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	Total     int64             `json:"total"`
	Phone     string            `json:"phone"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderDetailView `json:"items"`
}

type OrderListOutput struct {
	Items      []OrderOutput `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// Create はカートから注文を作る。本体は1つのトランザクションで、
// 途中で何か失敗したら在庫・カート・累計購入額は一切動かない。
func (u *OrderUsecase) Create(ctx context.Context, userID int64, phone string) (OrderOutput, error) {
	phone = strings.TrimSpace(phone)

	// 1. リコンサイル済みカートの取得。残らなければ空カート扱い。
	cart, items, err := u.cart.ReconciledCart(ctx, userID)
	if err != nil {
		return OrderOutput{}, err
	}
	if len(items) == 0 {
		return OrderOutput{}, apperr.New(apperr.EmptyCart, "cart is empty")
	}

	var out OrderOutput

	// 2. ここから先は全部で1つのunit of work
	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 3. トランザクション内で商品を行ロック付きで取り直す。
		// 並行して在庫が変わっても、ここで見える値が確定値。
		ids := make([]int64, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}

		products, err := r.Products().FindActiveByIDsForUpdate(ctx, ids)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "db error", err)
		}

		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		// カートに入っていたのに消えた/非公開になった商品は全部まとめて報告
		missing := make([]string, 0)
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, fmt.Sprintf("%d", id))
			}
		}
		if len(missing) > 0 {
			return apperr.Newf(apperr.ProductsUnavailable,
				"products no longer available: %s", strings.Join(missing, ", "))
		}

		// 在庫確認と減算。最初の不足で全体を中断する（部分注文はしない）。
		details := make([]model.OrderDetail, 0, len(items))
		views := make([]OrderDetailView, 0, len(items))
		var total int64

		for _, it := range items {
			p := byID[it.ProductID]

			ok, err := r.Inventory().DecrementStockIfEnough(ctx, p.ID, it.Quantity)
			if err != nil {
				return apperr.Wrap(apperr.Internal, "db error", err)
			}
			if !ok {
				return apperr.Newf(apperr.InsufficientStock,
					"insufficient stock for %q: %d available, %d requested", p.Name, p.Stock, it.Quantity)
			}

			// 4. 価格はこの時点のスナップショット。以後のカタログ変更に影響されない。
			productID := p.ID
			lineTotal := p.Price * it.Quantity
			details = append(details, model.OrderDetail{
				ProductID:     &productID,
				Quantity:      it.Quantity,
				PriceSnapshot: p.Price,
				Total:         lineTotal,
			})
			views = append(views, OrderDetailView{
				Product: OrderProductView{
					ID:       p.ID,
					Name:     p.Name,
					Price:    p.Price,
					Stock:    p.Stock - it.Quantity,
					ImageURL: p.ImageURL,
				},
				Quantity:      it.Quantity,
				PriceSnapshot: p.Price,
				Total:         lineTotal,
			})
			total += lineTotal
		}

		// 5. 注文の永続化、購入額の加算、電話番号の更新、カートのクリア
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Total:     total,
			CreatedAt: now,
		})
		if err != nil {
			return apperr.Wrap(apperr.Internal, "db error", err)
		}

		if err := r.OrderDetails().CreateBulk(ctx, orderID, details); err != nil {
			return apperr.Wrap(apperr.Internal, "db error", err)
		}

		if err := r.Users().AddMoneySpent(ctx, userID, total); err != nil {
			return apperr.Wrap(apperr.Internal, "db error", err)
		}

		if phone != "" {
			if err := r.Users().UpdatePhone(ctx, userID, phone); err != nil {
				return apperr.Wrap(apperr.Internal, "db error", err)
			}
		}

		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return apperr.Wrap(apperr.Internal, "db error", err)
		}

		out = OrderOutput{
			ID:        orderID,
			Total:     total,
			Phone:     phone,
			CreatedAt: now,
			Items:     views,
		}
		return nil
	})

	if txErr != nil {
		var ae *apperr.Error
		if errors.As(txErr, &ae) {
			return OrderOutput{}, txErr
		}
		return OrderOutput{}, apperr.Wrap(apperr.Internal, "transaction failed", txErr)
	}

	if out.Phone == "" {
		out.Phone = u.currentPhone(ctx, userID)
	}

	return out, nil
}

// GetByID は所有者にだけ注文を見せる。
// 他人の注文はForbidden（存在の有無はハンドラが404/403で区別する）。
func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64, userID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, apperr.New(apperr.Validation, "invalid order id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, apperr.New(apperr.NotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	if o.UserID != userID {
		return OrderOutput{}, apperr.New(apperr.Forbidden, "not your order")
	}

	return u.buildOrderOutput(ctx, o)
}

// ListByUser は自分の注文履歴を新しい順で返す。
func (u *OrderUsecase) ListByUser(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	orders, total, err := u.orderRepo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := u.buildOrderOutput(ctx, o)
		if err != nil {
			return OrderListOutput{}, err
		}
		items = append(items, out)
	}

	return OrderListOutput{
		Items:      items,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// 明細に商品ビューを付ける。商品が物理削除されていたらプレースホルダで埋める。
func (u *OrderUsecase) buildOrderOutput(ctx context.Context, o model.Order) (OrderOutput, error) {
	details, err := u.detailRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, apperr.Wrap(apperr.Internal, "db error", err)
	}

	views := make([]OrderDetailView, 0, len(details))
	for _, d := range details {
		views = append(views, OrderDetailView{
			Product:       u.productView(ctx, d),
			Quantity:      d.Quantity,
			PriceSnapshot: d.PriceSnapshot,
			Total:         d.Total,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		Total:     o.Total,
		Phone:     u.currentPhone(ctx, o.UserID),
		CreatedAt: o.CreatedAt,
		Items:     views,
	}, nil
}

func (u *OrderUsecase) productView(ctx context.Context, d model.OrderDetail) OrderProductView {
	if d.ProductID != nil {
		p, err := u.productRepo.FindByIDAny(ctx, *d.ProductID)
		if err == nil {
			return OrderProductView{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price,
				Stock:    p.Stock,
				ImageURL: p.ImageURL,
			}
		}
	}

	// 商品が消えた後のプレースホルダ。価格はスナップショットのまま。
	view := OrderProductView{
		Name:  deletedProductName,
		Price: d.PriceSnapshot,
		Stock: 0,
	}
	if d.ProductID != nil {
		view.ID = *d.ProductID
	}
	return view
}

func (u *OrderUsecase) currentPhone(ctx context.Context, userID int64) string {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Phone
}
