package timeslot

import (
	"fmt"
	"time"
)

// parseLayouts は受け付ける入力形式
// タイムゾーンオフセット付き（RFC3339）はゾーンを設定ゾーンへ変換し、
// オフセットなしは設定ゾーンの時刻として解釈する
var parseLayouts = []string{
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
}

// Normalizer は呼び出し元から渡された日時文字列を正規化済みの SlotTime に変換する
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer は指定タイムゾーンの Normalizer を作成する
func NewNormalizer(timezone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimezone, timezone)
	}
	return &Normalizer{loc: loc}, nil
}

// Location は正規化に使うタイムゾーンを返す
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize は日時文字列を正規化する
// 分が00または30以外の場合は ErrInvalidTimeGrid、解釈不能な場合は ErrInvalidTimeFormat を返す
// 冪等性: 正規化済み文字列を再度渡しても同じ結果になる
func (n *Normalizer) Normalize(raw string) (SlotTime, error) {
	if raw == "" {
		return SlotTime{}, ErrInvalidTimeFormat
	}

	t, err := n.parse(raw)
	if err != nil {
		return SlotTime{}, err
	}

	// 秒精度に切り捨て
	t = t.Truncate(time.Second)

	if m := t.Minute(); m != 0 && m != 30 {
		return SlotTime{}, ErrInvalidTimeGrid
	}

	return SlotTime{t: t}, nil
}

func (n *Normalizer) parse(raw string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, raw, n.loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(n.loc), nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}
