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

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// セッションの明細を一覧取得
func (r *CartItemGormRepository) ListBySessionID(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 明細を取得
func (r *CartItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 同一(session, product, size)は数量加算
func (r *CartItemGormRepository) Upsert(ctx context.Context, in model.CartItem) error {
	if in.Quantity <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ? AND product_code = ? AND size = ?", in.SessionID, in.ProductCode, in.Size).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			newQty := item.Quantity + in.Quantity

			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		in.ID = 0
		in.CreatedAt = now
		in.UpdatedAt = now

		if err := tx.Create(&in).Error; err != nil {
			return err
		}

		return nil
	})
}

// 明細の数量を更新（セッションの持ち主チェック込み）
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, itemID int64, sessionID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除（セッションの持ち主チェック込み）
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, itemID int64, sessionID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// セッションの明細を全削除
func (r *CartItemGormRepository) DeleteBySessionID(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.CartItem{}).Error
}
