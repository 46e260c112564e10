package repository

import (
	"context"

	"app/internal/domain/model"
)

type SettingsRepository interface {
	Get(ctx context.Context, id string) (model.AdminSettings, error)

	// expectedVersion不一致ならErrVersionConflict。
	// 行が無ければversion=1で作成する（expectedVersionは0を渡す）。
	Put(ctx context.Context, id string, data map[string]any, expectedVersion int64) (model.AdminSettings, error)
}
