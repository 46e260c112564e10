package model

import "time"

// SizeLevelはサイズごとの在庫と引当
type SizeLevel struct {
	Stock    int64 `json:"stock"`
	Reserved int64 `json:"reserved"`
}

// Decrementはstock/reservedをqtyぶん減らす（0未満にはしない）
func (l SizeLevel) Decrement(qty int64) SizeLevel {
	return SizeLevel{
		Stock:    clampZero(l.Stock - qty),
		Reserved: clampZero(l.Reserved - qty),
	}
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Codeは外部商品コード（注文明細からの参照キー）
type Product struct {
	ID        int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string               `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	Name      string               `gorm:"type:varchar(255);not null" json:"name"`
	Sizes     map[string]SizeLevel `gorm:"type:jsonb;serializer:json" json:"sizes"`
	IsActive  bool                 `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time            `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time            `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
