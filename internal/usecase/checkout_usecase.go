package usecase

import (
	"context"
	"math"
	"net/http"
	"strings"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// 画像URLの上限（Stripeが長すぎるURLを拒否する）
const maxImageURLLength = 2000

// legacy形式（旧クライアントの items 配列）
type LegacyItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int64   `json:"quantity"`
}

// 新形式の明細
type LineItemInput struct {
	ProductID       string   `json:"productId"`
	Name            string   `json:"name"`
	Size            string   `json:"size"`
	Images          []string `json:"images"`
	UnitAmountCents int64    `json:"unitAmount"`
	Quantity        int64    `json:"quantity"`
}

type CheckoutInput struct {
	LineItems     []LineItemInput
	Items         []LegacyItemInput
	SessionID     string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

type CheckoutOutput struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	TestMode bool   `json:"testMode,omitempty"`
}

type CheckoutUsecase struct {
	resolver *ProviderConfigResolver
	orders   repo.OrderRepository
	provider CheckoutProvider
	cfg      config.Config
}

func NewCheckoutUsecase(resolver *ProviderConfigResolver, orders repo.OrderRepository, provider CheckoutProvider, cfg config.Config) *CheckoutUsecase {
	return &CheckoutUsecase{
		resolver: resolver,
		orders:   orders,
		provider: provider,
		cfg:      cfg,
	}
}

func (u *CheckoutUsecase) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	lines := normalizeLineItems(in)
	if len(lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "no line items")
	}

	successURL := ResolveAbsoluteURL(u.cfg, in.SuccessURL, "/api/checkout-success")
	cancelURL := ResolveAbsoluteURL(u.cfg, in.CancelURL, "/api/checkout-cancel")

	for i := range lines {
		lines[i].Images = sanitizeImageURLs(lines[i].Images)
	}

	// プロバイダ呼び出しの前にpending注文を残す（失敗しても処理は続ける）
	orderID := u.createPendingOrder(ctx, in, lines)

	pc := u.resolver.Resolve(ctx)

	// テストモードは実呼び出しせず合成セッションを返す
	if pc.TestMode {
		sessionID := "cs_test_mock_" + uuid.NewString()
		u.stampOrder(ctx, orderID, sessionID)
		return CheckoutOutput{
			ID:       sessionID,
			URL:      successURL + "?session_id=" + sessionID,
			TestMode: true,
		}, nil
	}

	session, err := u.provider.CreateSession(ctx, pc.SecretKey, ProviderSessionRequest{
		LineItems:     lines,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		CustomerEmail: in.CustomerEmail,
	})
	if err != nil {
		// プロバイダのメッセージはデバッグ用にそのまま返す（秘匿情報ではない）
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	u.stampOrder(ctx, orderID, session.ID)

	return CheckoutOutput{ID: session.ID, URL: session.URL}, nil
}

// pending注文の作成はベストエフォート。失敗時は0を返す
func (u *CheckoutUsecase) createPendingOrder(ctx context.Context, in CheckoutInput, lines []LineItem) int64 {
	var total int64
	orderLines := make([]model.OrderLine, 0, len(lines))
	for _, li := range lines {
		orderLines = append(orderLines, model.OrderLine{
			ProductCode:    li.ProductCode,
			Name:           li.Name,
			Size:           li.Size,
			Quantity:       li.Quantity,
			UnitPriceCents: li.UnitAmountCents,
		})
		total += li.UnitAmountCents * li.Quantity
	}

	orderID, err := u.orders.Create(ctx, model.Order{
		SessionID:     in.SessionID,
		Status:        model.OrderStatusPending,
		TotalCents:    total,
		CustomerEmail: in.CustomerEmail,
		Items:         orderLines,
	})
	if err != nil {
		log.Warnf("checkout: pending order create failed, continuing: %v", err)
		return 0
	}
	return orderID
}

// セッションIDのスタンプもベストエフォート
func (u *CheckoutUsecase) stampOrder(ctx context.Context, orderID int64, sessionID string) {
	if orderID == 0 {
		return
	}
	if err := u.orders.StampProviderSessionID(ctx, orderID, sessionID); err != nil {
		log.Warnf("checkout: stamp session id failed for order %d: %v", orderID, err)
	}
}

// 新旧どちらの形でも内部のLineItemに揃える。
// legacy itemsの単価は round(price × 100) で最小通貨単位へ。
func normalizeLineItems(in CheckoutInput) []LineItem {
	if len(in.LineItems) > 0 {
		out := make([]LineItem, 0, len(in.LineItems))
		for _, li := range in.LineItems {
			if li.Quantity < 1 || li.Name == "" {
				continue
			}
			out = append(out, LineItem{
				ProductCode:     li.ProductID,
				Name:            li.Name,
				Size:            li.Size,
				Images:          li.Images,
				UnitAmountCents: li.UnitAmountCents,
				Quantity:        li.Quantity,
			})
		}
		return out
	}

	out := make([]LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity < 1 || it.Name == "" {
			continue
		}
		var images []string
		if it.Image != "" {
			images = []string{it.Image}
		}
		out = append(out, LineItem{
			ProductCode:     it.ProductID,
			Name:            it.Name,
			Size:            it.Size,
			Images:          images,
			UnitAmountCents: Cents(it.Price),
			Quantity:        it.Quantity,
		})
	}
	return out
}

// ドル→セント
func Cents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// 相対パスをサイト起点の絶対URLにする。絶対URLはそのまま通す。
// 起点の優先順: SITE_ORIGIN > DEPLOY_URL > CORS_ORIGIN > localhost
func ResolveAbsoluteURL(cfg config.Config, raw string, def string) string {
	if raw == "" {
		raw = def
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	origin := cfg.SiteOrigin
	if origin == "" && cfg.DeployURL != "" {
		origin = cfg.DeployURL
		// デプロイ環境のURLはスキーム無しで渡ってくることがある
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			origin = "https://" + origin
		}
	}
	if origin == "" {
		origin = cfg.CORSOrigin
	}
	if origin == "" {
		origin = "http://localhost:3000"
	}

	origin = strings.TrimSuffix(origin, "/")
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return origin + raw
}

// http(s)以外と長すぎるURLを落とす。1件の不正URLでセッション全体を壊さない
func sanitizeImageURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if len(u) > maxImageURLLength {
			continue
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		out = append(out, u)
	}
	return out
}
