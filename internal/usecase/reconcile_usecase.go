package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

// 同じイベントの再配送（処理済み）
var errEventReplayed = errors.New("event already processed")

// Reconcilerは決済完了イベントを在庫と注文に反映する一枚の約束。
// 主系（トランザクション）と縮退系（ベストエフォート）の2戦略がある。
type Reconciler interface {
	Apply(ctx context.Context, ev ProviderEvent) error
}

// ---- 主系：トランザクション＋行ロック＋イベント重複排除 ----

type TransactionalReconciler struct {
	tx repo.TransactionManager
}

func NewTransactionalReconciler(tx repo.TransactionManager) *TransactionalReconciler {
	return &TransactionalReconciler{tx: tx}
}

func (t *TransactionalReconciler) Apply(ctx context.Context, ev ProviderEvent) error {
	err := t.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 先にイベントIDを記録。重複＝再配送なので何もしない
		if ev.ID != "" {
			err := r.WebhookEvents().Record(ctx, model.WebhookEvent{
				EventID:     ev.ID,
				EventType:   ev.Type,
				ProcessedAt: time.Now(),
			})
			if errors.Is(err, repo.ErrDuplicateEvent) {
				return errEventReplayed
			}
			if err != nil {
				return err
			}
		}

		// 注文を行ロックで取得。無ければ受領だけして終わる
		order, err := r.Orders().FindByProviderSessionID(ctx, ev.SessionID, true)
		if errors.Is(err, repo.ErrNotFound) {
			log.Warnf("reconcile: no order for session %s, acknowledging", ev.SessionID)
			return nil
		}
		if err != nil {
			return err
		}

		if order.Status == model.OrderStatusPaid {
			return nil
		}

		for _, line := range order.Items {
			if err := decrementVariant(ctx, r.Products(), line, true); err != nil {
				return err
			}
		}

		return r.Orders().UpdateStatus(ctx, order.ID, model.OrderStatusPaid)
	})

	if errors.Is(err, errEventReplayed) {
		log.Warnf("reconcile: event %s already processed, ignoring", ev.ID)
		return nil
	}
	if err != nil {
		// ロールバック済み。500を返してプロバイダに再配送させる
		log.Errorf("reconcile: transaction failed for session %s: %v", ev.SessionID, err)
		return NewHTTPError(http.StatusInternalServerError, "reconciliation failed")
	}
	return nil
}

// ---- 縮退系：ロックも巻き戻しも無しのベストエフォート ----

type BestEffortReconciler struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
}

func NewBestEffortReconciler(orders repo.OrderRepository, products repo.ProductRepository) *BestEffortReconciler {
	return &BestEffortReconciler{orders: orders, products: products}
}

// 失敗してもエラーは返さない（再配送を止めるため常に受領する）
func (b *BestEffortReconciler) Apply(ctx context.Context, ev ProviderEvent) error {
	order, err := b.orders.FindByProviderSessionID(ctx, ev.SessionID, false)
	if errors.Is(err, repo.ErrNotFound) {
		log.Warnf("reconcile(best-effort): no order for session %s", ev.SessionID)
		return nil
	}
	if err != nil {
		log.Errorf("reconcile(best-effort): order lookup failed: %v", err)
		return nil
	}

	if order.Status == model.OrderStatusPaid {
		return nil
	}

	for _, line := range order.Items {
		if err := decrementVariant(ctx, b.products, line, false); err != nil {
			log.Errorf("reconcile(best-effort): decrement %s/%s failed: %v", line.ProductCode, line.Size, err)
		}
	}

	if err := b.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPaid); err != nil {
		log.Errorf("reconcile(best-effort): mark paid failed for order %d: %v", order.ID, err)
	}
	return nil
}

// 1明細ぶんの在庫減算。商品やサイズが見つからなければスキップ（ログのみ）
func decrementVariant(ctx context.Context, products repo.ProductRepository, line model.OrderLine, forUpdate bool) error {
	p, err := products.FindByCode(ctx, line.ProductCode, forUpdate)
	if errors.Is(err, repo.ErrNotFound) {
		log.Warnf("reconcile: product %s not found, skipping line", line.ProductCode)
		return nil
	}
	if err != nil {
		return err
	}

	// 無いサイズを減算するとゼロ在庫の行が生えてしまうので書かない
	level, ok := p.Sizes[line.Size]
	if !ok {
		log.Warnf("reconcile: product %s has no size %s, skipping line", line.ProductCode, line.Size)
		return nil
	}

	sizes := make(map[string]model.SizeLevel, len(p.Sizes))
	for k, v := range p.Sizes {
		sizes[k] = v
	}
	sizes[line.Size] = level.Decrement(line.Quantity)

	return products.UpdateSizes(ctx, p.ID, sizes)
}
