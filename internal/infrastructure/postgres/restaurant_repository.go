package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/davcho16/flavor-trail/internal/domain/restaurant"
)

type restaurantRow struct {
	ID      string  `db:"restaurant_id"`
	Name    string  `db:"restaurant_name"`
	Address string  `db:"address"`
	ZipCode string  `db:"zip_code"`
	Cuisine string  `db:"cuisine"`
	Rating  float64 `db:"rating"`
}

func (r *restaurantRow) toEntity() *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID: r.ID, Name: r.Name, Address: r.Address,
		ZipCode: r.ZipCode, Cuisine: r.Cuisine, Rating: r.Rating,
	}
}

type menuItemRow struct {
	ID             string  `db:"menu_item_id"`
	RestaurantID   string  `db:"restaurant_id"`
	RestaurantName string  `db:"restaurant_name"`
	ItemName       string  `db:"item_name"`
	ItemPrice      float64 `db:"item_price"`
}

// RestaurantRepository はレストランカタログの読み取り専用PostgreSQL実装
// 予約エンジンはカタログを所有しないため、書き込み操作は提供しない
type RestaurantRepository struct{ db *sqlx.DB }

func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `restaurant_id, restaurant_name, address, zip_code, cuisine, rating`

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	var row restaurantRow
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE restaurant_id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurant.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("レストラン取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *RestaurantRepository) ListByZipCode(ctx context.Context, zipCode string, limit int) ([]*restaurant.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE zip_code = $1 ORDER BY restaurant_name LIMIT $2`
	return r.list(ctx, query, zipCode, limit)
}

func (r *RestaurantRepository) ListByCuisine(ctx context.Context, cuisine string, limit int) ([]*restaurant.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE LOWER(cuisine) = LOWER($1) ORDER BY restaurant_name LIMIT $2`
	return r.list(ctx, query, cuisine, limit)
}

func (r *RestaurantRepository) ListTopRated(ctx context.Context, limit int) ([]*restaurant.Restaurant, error) {
	var rows []restaurantRow
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY rating DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("レストラン一覧取得に失敗: %w", err)
	}
	return toRestaurants(rows), nil
}

func (r *RestaurantRepository) ListMenuItemsUnder(ctx context.Context, maxPrice float64, limit int) ([]*restaurant.MenuItem, error) {
	var rows []menuItemRow
	query := `SELECT m.menu_item_id, m.restaurant_id, rest.restaurant_name, m.item_name, m.item_price
		FROM menu_items m
		JOIN restaurants rest ON m.restaurant_id = rest.restaurant_id
		WHERE m.item_price <= $1
		ORDER BY rest.restaurant_name, m.item_price
		LIMIT $2`
	if err := r.db.SelectContext(ctx, &rows, query, maxPrice, limit); err != nil {
		return nil, fmt.Errorf("メニュー一覧取得に失敗: %w", err)
	}
	items := make([]*restaurant.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = &restaurant.MenuItem{
			ID: row.ID, RestaurantID: row.RestaurantID, RestaurantName: row.RestaurantName,
			ItemName: row.ItemName, ItemPrice: row.ItemPrice,
		}
	}
	return items, nil
}

func (r *RestaurantRepository) list(ctx context.Context, query string, arg interface{}, limit int) ([]*restaurant.Restaurant, error) {
	var rows []restaurantRow
	if err := r.db.SelectContext(ctx, &rows, query, arg, limit); err != nil {
		return nil, fmt.Errorf("レストラン一覧取得に失敗: %w", err)
	}
	return toRestaurants(rows), nil
}

func toRestaurants(rows []restaurantRow) []*restaurant.Restaurant {
	result := make([]*restaurant.Restaurant, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}

var _ restaurant.Repository = (*RestaurantRepository)(nil)
