package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

// 対象イベント
const (
	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	eventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
)

// WebhookUsecase は署名検証→イベント種別でのディスパッチまでを担当する。
// 反映そのものはReconcilerに渡す。
type WebhookUsecase struct {
	resolver      *ProviderConfigResolver
	verifier      EventVerifier
	tx            repo.TransactionManager
	transactional Reconciler
	bestEffort    Reconciler
	orders        repo.OrderRepository
}

func NewWebhookUsecase(
	resolver *ProviderConfigResolver,
	verifier EventVerifier,
	tx repo.TransactionManager,
	transactional Reconciler,
	bestEffort Reconciler,
	orders repo.OrderRepository,
) *WebhookUsecase {
	return &WebhookUsecase{
		resolver:      resolver,
		verifier:      verifier,
		tx:            tx,
		transactional: transactional,
		bestEffort:    bestEffort,
		orders:        orders,
	}
}

// 戻り値は受領ボディ（"ok" / "ignored"）。エラーはHTTPError。
func (u *WebhookUsecase) HandleEvent(ctx context.Context, payload []byte, sigHeader string) (string, error) {
	ev, err := u.parse(ctx, payload, sigHeader)
	if err != nil {
		return "", err
	}

	switch ev.Type {
	case eventCheckoutCompleted, eventAsyncPaymentSucceeded:
		if err := u.pickReconciler(ctx).Apply(ctx, ev); err != nil {
			return "", err
		}
		return "ok", nil

	case eventAsyncPaymentFailed:
		u.markFailed(ctx, ev)
		return "ok", nil

	default:
		// 受領しないとプロバイダが再配送し続ける
		return "ignored", nil
	}
}

func (u *WebhookUsecase) parse(ctx context.Context, payload []byte, sigHeader string) (ProviderEvent, error) {
	secret := u.resolver.Resolve(ctx).WebhookSecret

	if secret != "" {
		if len(payload) == 0 || sigHeader == "" {
			return ProviderEvent{}, NewHTTPError(http.StatusBadRequest, "missing signature")
		}
		ev, err := u.verifier.VerifyAndParse(payload, sigHeader, secret)
		if err != nil {
			return ProviderEvent{}, NewHTTPError(http.StatusBadRequest, "invalid signature")
		}
		return ev, nil
	}

	// シークレット未設定は検証なしで通す（ローカル開発のみの想定）
	log.Warnf("webhook: no webhook secret configured, accepting unverified event")
	ev, err := u.verifier.ParseUnverified(payload)
	if err != nil {
		return ProviderEvent{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return ev, nil
}

// 主系DBが生きていればトランザクション戦略、だめならベストエフォート
func (u *WebhookUsecase) pickReconciler(ctx context.Context) Reconciler {
	if u.tx != nil && u.tx.Available(ctx) {
		return u.transactional
	}
	log.Warnf("webhook: primary datastore unavailable, using best-effort reconciliation")
	return u.bestEffort
}

// 非同期決済の失敗。注文をfailedにするだけ（在庫には触らない）
func (u *WebhookUsecase) markFailed(ctx context.Context, ev ProviderEvent) {
	order, err := u.orders.FindByProviderSessionID(ctx, ev.SessionID, false)
	if errors.Is(err, repo.ErrNotFound) {
		return
	}
	if err != nil {
		log.Errorf("webhook: order lookup failed for session %s: %v", ev.SessionID, err)
		return
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusFailed); err != nil {
		log.Errorf("webhook: mark failed failed for order %d: %v", order.ID, err)
	}
}
