package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// 公開一覧
func (u *ProductUsecase) ListPublic(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListPublic(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// 公開詳細（非公開は存在しない扱い）
func (u *ProductUsecase) GetPublic(ctx context.Context, code string) (model.Product, error) {
	p, err := u.productRepo.FindByCode(ctx, code, false)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

type AdminProductInput struct {
	Code     string
	Name     string
	Sizes    map[string]model.SizeLevel
	IsActive bool
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, in AdminProductInput) (model.Product, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	// 在庫は負で入れさせない
	sizes := clampSizes(in.Sizes)

	p, err := u.productRepo.Create(ctx, model.Product{
		Code:     code,
		Name:     in.Name,
		Sizes:    sizes,
		IsActive: in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, code string, in AdminProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid")
	}

	p, err := u.productRepo.FindByCode(ctx, code, false)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = in.Name
	p.Sizes = clampSizes(in.Sizes)
	p.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, code string) error {
	if err := u.productRepo.Delete(ctx, code); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// サイズ別の絶対値セット（クランプ込み）
func (u *ProductUsecase) AdminSetSizeLevel(ctx context.Context, code string, size string, level model.SizeLevel) error {
	if strings.TrimSpace(size) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid size")
	}

	p, err := u.productRepo.FindByCode(ctx, code, false)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	sizes := make(map[string]model.SizeLevel, len(p.Sizes)+1)
	for k, v := range p.Sizes {
		sizes[k] = v
	}
	sizes[size] = clampLevel(level)

	if err := u.productRepo.UpdateSizes(ctx, p.ID, sizes); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func clampSizes(in map[string]model.SizeLevel) map[string]model.SizeLevel {
	out := make(map[string]model.SizeLevel, len(in))
	for k, v := range in {
		out[k] = clampLevel(v)
	}
	return out
}

func clampLevel(l model.SizeLevel) model.SizeLevel {
	if l.Stock < 0 {
		l.Stock = 0
	}
	if l.Reserved < 0 {
		l.Reserved = 0
	}
	return l
}
