package usecase

import "context"

// 正規化済みの明細（legacy itemsもlineItemsもここに揃える）
type LineItem struct {
	ProductCode     string
	Name            string
	Size            string
	Images          []string
	UnitAmountCents int64
	Quantity        int64
}

type ProviderSessionRequest struct {
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

type ProviderSession struct {
	ID  string
	URL string
}

// 決済プロバイダにホスト型チェックアウトセッションを作らせる約束
type CheckoutProvider interface {
	CreateSession(ctx context.Context, secretKey string, req ProviderSessionRequest) (ProviderSession, error)
}

// webhookイベント（プロバイダ形式から内部形式に落としたもの）
type ProviderEvent struct {
	ID            string
	Type          string
	SessionID     string
	CustomerEmail string
}

// webhookの署名検証とイベントのパースの約束
type EventVerifier interface {
	// 署名を検証してからパースする
	VerifyAndParse(payload []byte, sigHeader string, secret string) (ProviderEvent, error)

	// 検証なしでパースする（webhookシークレット未設定の開発用）
	ParseUnverified(payload []byte) (ProviderEvent, error)
}
