package restaurant

// Restaurant はカタログ上のレストランを表す
// 予約エンジンから見て読み取り専用。所有はカタログ側にあり、本システムはCRUDを提供しない
type Restaurant struct {
	ID      string
	Name    string
	Address string
	ZipCode string
	Cuisine string
	Rating  float64
}

// MenuItem はレストランのメニュー項目を表す
type MenuItem struct {
	ID             string
	RestaurantID   string
	RestaurantName string
	ItemName       string
	ItemPrice      float64
}
