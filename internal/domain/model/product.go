package model

import "time"

// 商品の公開状態。削除は物理削除ではなくHIDDENへの切り替え。
type ProductStatus string

const (
	ProductStatusActive ProductStatus = "ACTIVE"
	ProductStatusHidden ProductStatus = "HIDDEN"
)

type Product struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Price       int64         `gorm:"not null" json:"price"`
	Stock       int64         `gorm:"not null" json:"stock"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;index;default:'ACTIVE'" json:"status"`
	ImageURL    string        `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 公開カタログに出してよい状態か
func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
