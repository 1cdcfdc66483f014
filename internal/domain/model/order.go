package model

import "time"

// 注文ヘッダ。作成後は一切変更しない。
type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Total     int64     `gorm:"not null" json:"total"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
