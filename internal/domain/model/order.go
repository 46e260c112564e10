package model

import "time"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusFailed   OrderStatus = "failed"
	OrderStatusRefunded OrderStatus = "refunded"
)

// OrderLineは注文時点の明細スナップショット（JSONBに保存）
type OrderLine struct {
	ProductCode    string `json:"product_code"`
	Name           string `json:"name"`
	Size           string `json:"size"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// チェックアウト開始時にpendingで作成し、webhookでpaidに遷移する。
// ProviderSessionIDはセッション作成後にスタンプ（NULL可・ユニーク）。
type Order struct {
	ID                int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID         string         `gorm:"type:varchar(255);index" json:"session_id"`
	ProviderSessionID *string        `gorm:"type:varchar(255);uniqueIndex" json:"provider_session_id"`
	Status            OrderStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalCents        int64          `gorm:"not null" json:"total_cents"`
	CustomerEmail     string         `gorm:"type:varchar(255)" json:"customer_email"`
	ShippingAddress   map[string]any `gorm:"type:jsonb;serializer:json" json:"shipping_address"`
	Items             []OrderLine    `gorm:"type:jsonb;serializer:json" json:"items"`
	CreatedAt         time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
