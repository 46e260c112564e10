package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートはログインではなくセッションID（bearer的な合言葉）で持ち主を識別する。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
}

func NewCartUsecase(cartItemRepo repo.CartItemRepository) *CartUsecase {
	return &CartUsecase{cartItemRepo: cartItemRepo}
}

type CartItemResponse struct {
	ID          int64  `json:"id"`
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Image       string `json:"image"`
	Size        string `json:"size"`
	Quantity    int64  `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

type AddCartInput struct {
	ProductCode string
	Name        string
	Price       float64 // ドル。保存時にセントへ丸める
	Image       string
	Size        string
	Quantity    int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（空でも200で空配列を返す）
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing session id")
	}
	return u.buildCartResponse(ctx, sessionID)
}

// AddToCart はカートに追加（同一商品・同一サイズは数量加算）
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing session id")
	}
	if in.ProductCode == "" || in.Name == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if in.Price < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	err := u.cartItemRepo.Upsert(ctx, model.CartItem{
		SessionID:   sessionID,
		ProductCode: in.ProductCode,
		Size:        in.Size,
		Name:        in.Name,
		PriceCents:  Cents(in.Price),
		Image:       in.Image,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, sessionID)
}

// 数量変更（持ち主チェックはsession_id条件で兼ねる）
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, itemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing session id")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, itemID, sessionID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, sessionID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, itemID int64) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing session id")
	}
	if itemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, itemID, sessionID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, sessionID)
}

// カート全消し（クライアントの明示操作用）
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "missing session id")
	}
	if err := u.cartItemRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CartResponse{Items: []CartItemResponse{}}, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, sessionID string) (CartResponse, error) {
	items, err := u.cartItemRepo.ListBySessionID(ctx, sessionID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			ID:          it.ID,
			ProductCode: it.ProductCode,
			Name:        it.Name,
			PriceCents:  it.PriceCents,
			Image:       it.Image,
			Size:        it.Size,
			Quantity:    it.Quantity,
		})
		total += it.PriceCents * it.Quantity
	}

	return CartResponse{Items: respItems, TotalCents: total}, nil
}
