package model

import "time"

// admin設定のシングルトン行。固定UUIDで1行だけ持つ。
// Versionは楽観ロック用（更新時に一致を要求してインクリメント）。
type AdminSettings struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Data      map[string]any `gorm:"type:jsonb;serializer:json" json:"data"`
	Version   int64          `gorm:"not null;default:1" json:"version"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
