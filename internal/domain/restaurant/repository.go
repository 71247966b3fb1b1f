package restaurant

import "context"

// Repository はレストランカタログの読み取り専用インターフェース
type Repository interface {
	// GetByID はIDからレストランを取得する
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// ListByZipCode は郵便番号に一致するレストラン一覧を取得する
	ListByZipCode(ctx context.Context, zipCode string, limit int) ([]*Restaurant, error)

	// ListByCuisine は料理ジャンルに一致するレストラン一覧を取得する
	ListByCuisine(ctx context.Context, cuisine string, limit int) ([]*Restaurant, error)

	// ListTopRated は評価の高い順にレストラン一覧を取得する
	ListTopRated(ctx context.Context, limit int) ([]*Restaurant, error)

	// ListMenuItemsUnder は上限価格以下のメニュー項目を取得する
	ListMenuItemsUnder(ctx context.Context, maxPrice float64, limit int) ([]*MenuItem, error)
}
