package model

import "time"

// カートの明細。セッションIDで持ち主を識別する（ログイン無し）。
// 同一(session_id, product_code, size)は1行で、追加は数量加算。
type CartItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_session_product_size" json:"session_id"`
	ProductCode string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_session_product_size" json:"product_code"`
	Size        string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_cart_session_product_size" json:"size"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Image       string    `gorm:"type:text" json:"image"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
