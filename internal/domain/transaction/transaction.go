package transaction

import "context"

// Tx はトランザクションを表すインターフェース
// ドメイン層が永続化層（sqlx等）へ直接依存しないための抽象化
// 予約と紐付けの書き込みは必ずこのトランザクション境界の中で行う
type Tx interface {
	// Commit はトランザクションをコミットする
	Commit() error
	// Rollback はトランザクションをロールバックする
	Rollback() error
}

// Manager はトランザクションを管理するインターフェース
type Manager interface {
	// Begin は新しいトランザクションを開始する
	Begin(ctx context.Context) (Tx, error)
}
