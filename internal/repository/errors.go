package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// 楽観ロックの版ずれ
	ErrVersionConflict = errors.New("version conflict")

	// 同じwebhookイベントをもう一度記録しようとした
	ErrDuplicateEvent = errors.New("duplicate event")
)
