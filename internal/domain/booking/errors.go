package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrReservationNotFound  = errors.New("予約が見つかりません")
	ErrSlotFull             = errors.New("この時間帯は満席です。別の時間帯をお選びください")
	ErrUserNameRequired     = errors.New("お名前は必須です")
	ErrTimeRequired         = errors.New("予約時刻は必須です")
	ErrPartySizeInvalid     = errors.New("人数は1以上である必要があります")
	ErrRestaurantIDRequired = errors.New("レストランIDは必須です")
)
