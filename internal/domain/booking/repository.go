package booking

import (
	"context"
	"time"

	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
	"github.com/davcho16/flavor-trail/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は予約とレストラン紐付けを作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// GetByID はIDから予約を取得する（紐付け先レストランIDを含む）
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// ListByUser はユーザー名とレストランIDに一致する予約一覧を取得する
	ListByUser(ctx context.Context, userName, restaurantID string) ([]*Reservation, error)

	// Update は予約時刻と人数を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// Delete は予約と紐付けの両方を削除する（トランザクション必須）
	// どちらか一方だけが残る状態を作ってはならない
	Delete(ctx context.Context, tx transaction.Tx, id string) error

	// CountActive は (restaurant_id, スロット) のアクティブ予約数を返す
	CountActive(ctx context.Context, restaurantID string, at timeslot.SlotTime) (int, error)

	// CountActiveTx はトランザクション内でアクティブ予約数を返す
	// 定員チェックと書き込みを同一トランザクションで行うために使用する
	CountActiveTx(ctx context.Context, tx transaction.Tx, restaurantID string, at timeslot.SlotTime) (int, error)

	// CountUpcoming は指定時刻以降のアクティブ予約総数を返す
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}
