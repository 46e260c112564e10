package model

import "time"

// 処理済みwebhookイベントの記録（再配送の二重処理防止）

type WebhookEvent struct {
	EventID     string    `gorm:"type:varchar(128);primaryKey" json:"event_id"`
	EventType   string    `gorm:"type:varchar(64);index" json:"event_type"`
	ProcessedAt time.Time `gorm:"not null" json:"processed_at"`
}
