package timeslot

import "errors"

// Timeslot ドメインのエラー定義
var (
	ErrInvalidTimeFormat = errors.New("日時の形式が不正です")
	ErrInvalidTimeGrid   = errors.New("予約時刻は00分または30分のみ指定できます")
	ErrUnknownTimezone   = errors.New("不明なタイムゾーンです")
)
