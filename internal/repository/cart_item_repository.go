package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListBySessionID(ctx context.Context, sessionID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, itemID int64) (model.CartItem, error)

	// 同一(session, product, size)は数量加算
	Upsert(ctx context.Context, item model.CartItem) error

	UpdateQuantity(ctx context.Context, itemID int64, sessionID string, qty int64) error
	DeleteByID(ctx context.Context, itemID int64, sessionID string) error
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
