package application

import (
	"context"

	"github.com/davcho16/flavor-trail/internal/domain/restaurant"
)

const (
	defaultListLimit = 100
	topRatedLimit    = 50
)

// CatalogService はレストランカタログの読み取りサービス
// 予約エンジンの外部コラボレーターに相当し、状態遷移や排他制御を持たない
type CatalogService struct {
	restaurantRepo restaurant.Repository
}

func NewCatalogService(restaurantRepo restaurant.Repository) *CatalogService {
	return &CatalogService{restaurantRepo: restaurantRepo}
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListByZipCode(ctx context.Context, zipCode string) ([]*restaurant.Restaurant, error) {
	return s.restaurantRepo.ListByZipCode(ctx, zipCode, defaultListLimit)
}

func (s *CatalogService) ListByCuisine(ctx context.Context, cuisine string) ([]*restaurant.Restaurant, error) {
	return s.restaurantRepo.ListByCuisine(ctx, cuisine, defaultListLimit)
}

func (s *CatalogService) ListTopRated(ctx context.Context) ([]*restaurant.Restaurant, error) {
	return s.restaurantRepo.ListTopRated(ctx, topRatedLimit)
}

func (s *CatalogService) ListMenuItemsUnder(ctx context.Context, maxPrice float64) ([]*restaurant.MenuItem, error) {
	return s.restaurantRepo.ListMenuItemsUnder(ctx, maxPrice, defaultListLimit)
}
