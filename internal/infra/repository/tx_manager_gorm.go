package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	products      repo.ProductRepository
	webhookEvents repo.WebhookEventRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) WebhookEvents() repo.WebhookEventRepository { return r.webhookEvents }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			products:      NewProductGormRepository(tx),
			webhookEvents: NewWebhookEventGormRepository(tx),
		}
		return fn(r)
	})
}

// pingが通るかどうか（reconcileのフォールバック判定）
func (tm *TxManagerGorm) Available(ctx context.Context) bool {
	sqlDB, err := tm.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
