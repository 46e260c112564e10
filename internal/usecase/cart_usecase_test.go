package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListBySessionID(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	args := m.Called(ctx, sessionID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Upsert(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, itemID int64, sessionID string, qty int64) error {
	args := m.Called(ctx, itemID, sessionID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, itemID int64, sessionID string) error {
	args := m.Called(ctx, itemID, sessionID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteBySessionID(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestGetCart_MissingSessionID(t *testing.T) {
	uc := NewCartUsecase(&CartItemRepoMock{})

	_, err := uc.GetCart(context.Background(), "")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAddToCart_MissingFields(t *testing.T) {
	cartRepo := &CartItemRepoMock{}
	uc := NewCartUsecase(cartRepo)

	_, err := uc.AddToCart(context.Background(), "sess-1", AddCartInput{Name: "Hoodie", Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAddToCart_UpsertWithCents(t *testing.T) {
	cartRepo := &CartItemRepoMock{}
	uc := NewCartUsecase(cartRepo)

	cartRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(it model.CartItem) bool {
		return it.SessionID == "sess-1" &&
			it.ProductCode == "P1" &&
			it.Size == "M" &&
			it.PriceCents == 1999 &&
			it.Quantity == 2
	})).Return(nil)

	cartRepo.On("ListBySessionID", mock.Anything, "sess-1").Return([]model.CartItem{
		{ID: 1, SessionID: "sess-1", ProductCode: "P1", Size: "M", Name: "Hoodie", PriceCents: 1999, Quantity: 2},
	}, nil)

	out, err := uc.AddToCart(context.Background(), "sess-1", AddCartInput{
		ProductCode: "P1",
		Name:        "Hoodie",
		Price:       19.99,
		Size:        "M",
		Quantity:    2,
	})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2*1999), out.TotalCents)
	cartRepo.AssertExpectations(t)
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	cartRepo := &CartItemRepoMock{}
	uc := NewCartUsecase(cartRepo)

	cartRepo.On("UpdateQuantity", mock.Anything, int64(9), "sess-1", int64(3)).Return(repo.ErrNotFound)

	_, err := uc.UpdateCartItem(context.Background(), "sess-1", 9, UpdateCartItemInput{Quantity: 3})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestDeleteCartItem_RebuildsResponse(t *testing.T) {
	cartRepo := &CartItemRepoMock{}
	uc := NewCartUsecase(cartRepo)

	cartRepo.On("DeleteByID", mock.Anything, int64(1), "sess-1").Return(nil)
	cartRepo.On("ListBySessionID", mock.Anything, "sess-1").Return([]model.CartItem{}, nil)

	out, err := uc.DeleteCartItem(context.Background(), "sess-1", 1)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.TotalCents)
}
