package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けの注文閲覧
type AdminOrderUsecase struct {
	orderRepo repo.OrderRepository
}

func NewAdminOrderUsecase(orderRepo repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orderRepo: orderRepo}
}

type AdminOrderListOutput struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
}

func (u *AdminOrderUsecase) List(ctx context.Context, page int, limit int, status string) (AdminOrderListOutput, error) {
	// statusは定義済みの値だけ許す（空は全件）
	switch model.OrderStatus(status) {
	case "", model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusFailed, model.OrderStatusRefunded:
	default:
		return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, total, err := u.orderRepo.ListAdmin(ctx, repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: status,
	})
	if err != nil {
		return AdminOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AdminOrderListOutput{Orders: orders, Total: total}, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}
