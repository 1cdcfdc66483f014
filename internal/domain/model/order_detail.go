package model

import "time"

// 注文明細。価格は注文時点のスナップショットで、後からカタログ価格が変わっても動かない。
// ProductIDは商品が物理削除された場合にNULLになり得る。
type OrderDetail struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64     `gorm:"not null;index" json:"order_id"`
	ProductID     *int64    `gorm:"index" json:"product_id"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	PriceSnapshot int64     `gorm:"not null;column:price_snapshot" json:"price_snapshot"`
	Total         int64     `gorm:"not null" json:"total"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
