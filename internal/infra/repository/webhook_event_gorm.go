package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WebhookEventGormRepository struct {
	db *gorm.DB
}

func NewWebhookEventGormRepository(db *gorm.DB) *WebhookEventGormRepository {
	return &WebhookEventGormRepository{db: db}
}

// 既に記録済みならErrDuplicateEvent（再配送の検知に使う）
func (r *WebhookEventGormRepository) Record(ctx context.Context, ev model.WebhookEvent) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ev)

	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateEvent
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrDuplicateEvent
	}
	return nil
}
