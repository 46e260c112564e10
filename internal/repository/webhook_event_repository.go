package repository

import (
	"context"

	"app/internal/domain/model"
)

type WebhookEventRepository interface {
	// 処理済みとして記録。既に存在すればErrDuplicateEvent
	Record(ctx context.Context, ev model.WebhookEvent) error
}
