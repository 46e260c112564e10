package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	Products() ProductRepository
	WebhookEvents() WebhookEventRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error

	// 主系DBが使えるかどうか（フォールバック判定に使う）
	Available(ctx context.Context) bool
}
