package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductRepository interface {
	// 公開商品のみ
	ListPublic(ctx context.Context) ([]model.Product, error)

	// コードで商品を取得。forUpdate=trueなら行ロック（tx内のみ意味を持つ）
	FindByCode(ctx context.Context, code string, forUpdate bool) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, code string) error

	// サイズ別在庫マップを丸ごと書き戻す
	UpdateSizes(ctx context.Context, productID int64, sizes map[string]model.SizeLevel) error
}
