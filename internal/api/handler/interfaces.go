package handler

import (
	"context"

	"github.com/davcho16/flavor-trail/internal/application"
	"github.com/davcho16/flavor-trail/internal/domain/booking"
	"github.com/davcho16/flavor-trail/internal/domain/restaurant"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*booking.Reservation, error)
	ListReservations(ctx context.Context, userName, restaurantID, reservationID string) ([]*booking.Reservation, error)
	GetReservation(ctx context.Context, id string) (*booking.Reservation, error)
	UpdateReservation(ctx context.Context, input application.UpdateReservationInput) (*booking.Reservation, error)
	CancelReservation(ctx context.Context, id string) error
	SlotAvailability(ctx context.Context, restaurantID, rawTime string) (int, error)
}

// CatalogServiceInterface はレストランカタログサービスのインターフェース
type CatalogServiceInterface interface {
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	ListByZipCode(ctx context.Context, zipCode string) ([]*restaurant.Restaurant, error)
	ListByCuisine(ctx context.Context, cuisine string) ([]*restaurant.Restaurant, error)
	ListTopRated(ctx context.Context) ([]*restaurant.Restaurant, error)
	ListMenuItemsUnder(ctx context.Context, maxPrice float64) ([]*restaurant.MenuItem, error)
}
