package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks
// =====================

type CheckoutOrderRepoMock struct{ mock.Mock }

func (m *CheckoutOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	panic("not used in checkout tests")
}

func (m *CheckoutOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CheckoutOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	panic("not used in checkout tests")
}

func (m *CheckoutOrderRepoMock) StampProviderSessionID(ctx context.Context, orderID int64, providerSessionID string) error {
	args := m.Called(ctx, orderID, providerSessionID)
	return args.Error(0)
}

func (m *CheckoutOrderRepoMock) FindByProviderSessionID(ctx context.Context, providerSessionID string, forUpdate bool) (model.Order, error) {
	panic("not used in checkout tests")
}

func (m *CheckoutOrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	panic("not used in checkout tests")
}

type CheckoutSettingsRepoMock struct{ mock.Mock }

func (m *CheckoutSettingsRepoMock) Get(ctx context.Context, id string) (model.AdminSettings, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.AdminSettings)
	return s, args.Error(1)
}

func (m *CheckoutSettingsRepoMock) Put(ctx context.Context, id string, data map[string]any, expectedVersion int64) (model.AdminSettings, error) {
	panic("not used in checkout tests")
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) CreateSession(ctx context.Context, secretKey string, req ProviderSessionRequest) (ProviderSession, error) {
	args := m.Called(ctx, secretKey, req)
	s, _ := args.Get(0).(ProviderSession)
	return s, args.Error(1)
}

func newCheckoutUsecaseForTest(cfg config.Config, orders *CheckoutOrderRepoMock, settings *CheckoutSettingsRepoMock, provider *ProviderMock) *CheckoutUsecase {
	resolver := NewProviderConfigResolver(settings, cfg)
	return NewCheckoutUsecase(resolver, orders, provider, cfg)
}

// =====================
// tests
// =====================

func TestCreateCheckoutSession_NoLineItems(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}
	uc := newCheckoutUsecaseForTest(config.Config{}, orders, settings, provider)

	_, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	orders.AssertNotCalled(t, "Create")
	provider.AssertNotCalled(t, "CreateSession")
}

func TestCreateCheckoutSession_TestModeSyntheticSession(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}

	// 鍵なし→プレースホルダでテストモード
	cfg := config.Config{SiteOrigin: "https://example.com"}
	uc := newCheckoutUsecaseForTest(cfg, orders, settings, provider)

	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)
	orders.On("Create", mock.Anything, mock.Anything).Return(int64(7), nil)
	orders.On("StampProviderSessionID", mock.Anything, int64(7), mock.MatchedBy(func(id string) bool {
		return strings.HasPrefix(id, "cs_test_mock_")
	})).Return(nil)

	out, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{
		Items: []LegacyItemInput{
			{ProductID: "P1", Name: "Hoodie", Price: 19.99, Size: "M", Quantity: 2},
		},
	})

	assert.NoError(t, err)
	assert.True(t, out.TestMode)
	assert.True(t, strings.HasPrefix(out.ID, "cs_test_mock_"))
	assert.True(t, strings.HasPrefix(out.URL, "https://example.com/api/checkout-success?session_id="))
	provider.AssertNotCalled(t, "CreateSession")
	orders.AssertExpectations(t)
}

func TestCreateCheckoutSession_LegacyItemsNormalized(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}
	cfg := config.Config{
		StripeSecretKey:      "sk_live_abc",
		StripePublishableKey: "pk_live_abc",
		SiteOrigin:           "https://example.com",
	}
	uc := newCheckoutUsecaseForTest(cfg, orders, settings, provider)

	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)

	var created model.Order
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		created = o
		return o.Status == model.OrderStatusPending
	})).Return(int64(3), nil)
	orders.On("StampProviderSessionID", mock.Anything, int64(3), "cs_live_1").Return(nil)

	var sent ProviderSessionRequest
	provider.On("CreateSession", mock.Anything, "sk_live_abc", mock.MatchedBy(func(req ProviderSessionRequest) bool {
		sent = req
		return true
	})).Return(ProviderSession{ID: "cs_live_1", URL: "https://stripe.test/s/1"}, nil)

	out, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{
		Items: []LegacyItemInput{
			{ProductID: "P1", Name: "Hoodie", Price: 19.99, Size: "M", Quantity: 2},
			{ProductID: "P2", Name: "Dropped", Price: 5, Quantity: 0}, // 数量0は落ちる
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "cs_live_1", out.ID)
	assert.False(t, out.TestMode)

	// round(19.99×100)=1999
	assert.Len(t, sent.LineItems, 1)
	assert.Equal(t, int64(1999), sent.LineItems[0].UnitAmountCents)
	assert.Equal(t, int64(2), sent.LineItems[0].Quantity)

	// pending注文は明細と合計を持つ
	assert.Len(t, created.Items, 1)
	assert.Equal(t, int64(2*1999), created.TotalCents)
	orders.AssertExpectations(t)
}

func TestCreateCheckoutSession_ImageSanitization(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}
	cfg := config.Config{
		StripeSecretKey:      "sk_live_abc",
		StripePublishableKey: "pk_live_abc",
	}
	uc := newCheckoutUsecaseForTest(cfg, orders, settings, provider)

	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)
	orders.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
	orders.On("StampProviderSessionID", mock.Anything, int64(1), "cs_1").Return(nil)

	var sent ProviderSessionRequest
	provider.On("CreateSession", mock.Anything, mock.Anything, mock.MatchedBy(func(req ProviderSessionRequest) bool {
		sent = req
		return true
	})).Return(ProviderSession{ID: "cs_1", URL: "https://stripe.test/s/1"}, nil)

	tooLong := "https://cdn.example.com/" + strings.Repeat("x", 2001)
	_, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{
		LineItems: []LineItemInput{
			{
				ProductID:       "P1",
				Name:            "Hoodie",
				UnitAmountCents: 1000,
				Quantity:        1,
				Images:          []string{"data:image/png;base64,xxxx", tooLong, "https://cdn.example.com/ok.png"},
			},
		},
	})

	// 不正URLはセッションを壊さず落ちるだけ
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/ok.png"}, sent.LineItems[0].Images)
}

func TestCreateCheckoutSession_OrderCreateFailureSwallowed(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}
	cfg := config.Config{
		StripeSecretKey:      "sk_live_abc",
		StripePublishableKey: "pk_live_abc",
	}
	uc := newCheckoutUsecaseForTest(cfg, orders, settings, provider)

	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)
	orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	provider.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).
		Return(ProviderSession{ID: "cs_2", URL: "https://stripe.test/s/2"}, nil)

	out, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{
		LineItems: []LineItemInput{
			{Name: "Hoodie", UnitAmountCents: 1000, Quantity: 1},
		},
	})

	// 注文記録の失敗はセッション作成を止めない
	assert.NoError(t, err)
	assert.Equal(t, "cs_2", out.ID)
	orders.AssertNotCalled(t, "StampProviderSessionID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	orders := &CheckoutOrderRepoMock{}
	settings := &CheckoutSettingsRepoMock{}
	provider := &ProviderMock{}
	cfg := config.Config{
		StripeSecretKey:      "sk_live_abc",
		StripePublishableKey: "pk_live_abc",
	}
	uc := newCheckoutUsecaseForTest(cfg, orders, settings, provider)

	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)
	orders.On("Create", mock.Anything, mock.Anything).Return(int64(9), nil)
	provider.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).
		Return(ProviderSession{}, errors.New("amount too small"))

	_, err := uc.CreateCheckoutSession(context.Background(), CheckoutInput{
		LineItems: []LineItemInput{
			{Name: "Hoodie", UnitAmountCents: 1, Quantity: 1},
		},
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Contains(t, he.Message, "amount too small")
}

func TestResolveAbsoluteURL(t *testing.T) {
	cfg := config.Config{SiteOrigin: "https://example.com"}

	// 相対パスはサイト起点に結合
	assert.Equal(t, "https://example.com/api/checkout-success",
		ResolveAbsoluteURL(cfg, "/api/checkout-success", "/fallback"))

	// 絶対URLはそのまま
	assert.Equal(t, "https://other.example/done",
		ResolveAbsoluteURL(cfg, "https://other.example/done", "/fallback"))

	// 空ならデフォルトパス
	assert.Equal(t, "https://example.com/api/checkout-cancel",
		ResolveAbsoluteURL(cfg, "", "/api/checkout-cancel"))

	// 優先順: SiteOrigin > DeployURL > CORSOrigin > localhost
	assert.Equal(t, "https://deploy.example/p",
		ResolveAbsoluteURL(config.Config{DeployURL: "deploy.example"}, "/p", "/p"))
	assert.Equal(t, "https://cors.example/p",
		ResolveAbsoluteURL(config.Config{CORSOrigin: "https://cors.example"}, "/p", "/p"))
	assert.Equal(t, "http://localhost:3000/p",
		ResolveAbsoluteURL(config.Config{}, "/p", "/p"))
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1999), Cents(19.99))
	assert.Equal(t, int64(100), Cents(1.0))
	assert.Equal(t, int64(0), Cents(0))
	// 浮動小数の誤差もroundで吸収
	assert.Equal(t, int64(1010), Cents(10.1))
}
