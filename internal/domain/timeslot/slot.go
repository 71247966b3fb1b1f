package timeslot

import (
	"fmt"
	"time"
)

// Layout は正規化済み予約時刻の文字列表現
// サーバーのタイムゾーン設定に依存しないよう、常に設定されたゾーンで解釈・出力する
const Layout = "2006-01-02 15:04:05"

// SlotTime は正規化済みの予約時刻を表す
// 比較・スロット照合は正規化後の値同士でのみ行う
type SlotTime struct {
	t time.Time
}

// Time は正規化済みの time.Time を返す
func (s SlotTime) Time() time.Time {
	return s.t
}

// String は正規化済みの文字列表現を返す
func (s SlotTime) String() string {
	return s.t.Format(Layout)
}

// Equal は2つの正規化済み時刻が同一スロットかを返す
func (s SlotTime) Equal(other SlotTime) bool {
	return s.t.Equal(other.t)
}

// IsZero は未設定かを返す
func (s SlotTime) IsZero() bool {
	return s.t.IsZero()
}

// FromTime は既に正規化済みの time.Time から SlotTime を復元する
// 永続化層の再構築用。グリッド検証は行わないため、入力が正規化済みであることは呼び出し側が保証する
func FromTime(t time.Time) SlotTime {
	return SlotTime{t: t}
}

// SlotKey は (restaurant_id, 正規化済み時刻) のスロットキーを生成する
// 定員チェックの直列化とキャッシュのキーに使用する
func SlotKey(restaurantID string, at SlotTime) string {
	return fmt.Sprintf("slot:%s:%s", restaurantID, at.String())
}
