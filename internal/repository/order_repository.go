package repository

import (
	"context"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// セッションID未採番のままprovider側のIDをスタンプする
	StampProviderSessionID(ctx context.Context, orderID int64, providerSessionID string) error

	// webhookからの逆引き。forUpdate=trueなら行ロック（tx内のみ意味を持つ）
	FindByProviderSessionID(ctx context.Context, providerSessionID string, forUpdate bool) (model.Order, error)

	// 管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
