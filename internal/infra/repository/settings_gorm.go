package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsGormRepository struct {
	db *gorm.DB
}

// DI
func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

func (r *SettingsGormRepository) Get(ctx context.Context, id string) (model.AdminSettings, error) {
	var s model.AdminSettings
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminSettings{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AdminSettings{}, err
	}
	return s, nil
}

// 楽観ロック付きの read-modify-write。
// 行が無ければexpectedVersion=0のときだけ新規作成する。
func (r *SettingsGormRepository) Put(ctx context.Context, id string, data map[string]any, expectedVersion int64) (model.AdminSettings, error) {
	var out model.AdminSettings

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.AdminSettings
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&cur).Error

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			if expectedVersion != 0 {
				return repo.ErrVersionConflict
			}
			out = model.AdminSettings{
				ID:        id,
				Data:      data,
				Version:   1,
				UpdatedAt: time.Now(),
			}
			return tx.Create(&out).Error
		}
		if findErr != nil {
			return findErr
		}

		if cur.Version != expectedVersion {
			return repo.ErrVersionConflict
		}

		res := tx.Model(&model.AdminSettings{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Select("data", "version").
			Updates(model.AdminSettings{Data: data, Version: expectedVersion + 1})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrVersionConflict
		}

		out = cur
		out.Data = data
		out.Version = expectedVersion + 1
		return nil
	})

	if err != nil {
		return model.AdminSettings{}, err
	}
	return out, nil
}
