package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/davcho16/flavor-trail/internal/api"
	"github.com/davcho16/flavor-trail/internal/api/handler"
	"github.com/davcho16/flavor-trail/internal/api/middleware"
	"github.com/davcho16/flavor-trail/internal/application"
	"github.com/davcho16/flavor-trail/internal/config"
	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
	"github.com/davcho16/flavor-trail/internal/infrastructure/postgres"
	redisinfra "github.com/davcho16/flavor-trail/internal/infrastructure/redis"
)

var (
	testServer  *TestServer
	testDB      *sqlx.DB
	redisClient *redis.Client
)

// TestMain はE2Eテストのエントリポイント
// パッケージ全体で1回だけサーバーを組み立てることで高速化
func TestMain(m *testing.M) {
	cfg := config.Load()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		os.Exit(0) // DB未起動時はスキップ
	}
	testDB = db

	// Redis接続
	rc := redisinfra.NewClient(&cfg.Redis)
	if err := redisinfra.Ping(context.Background(), rc); err != nil {
		db.Close()
		os.Exit(0) // Redis未起動時はスキップ
	}
	redisClient = rc

	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		if err := postgres.RunMigrations(db.DB, path); err != nil {
			db.Close()
			rc.Close()
			os.Exit(0)
		}
	}

	normalizer, err := timeslot.NewNormalizer(cfg.Booking.Timezone)
	if err != nil {
		os.Exit(1)
	}

	// サービス初期化
	txManager := postgres.NewTxManager(db)
	bookingRepo := postgres.NewBookingRepository(db, normalizer.Location())
	restaurantRepo := postgres.NewRestaurantRepository(db)

	lockManager := redisinfra.NewLockManager(redisClient)
	slotCache := redisinfra.NewSlotCache(redisClient)

	bookingService := application.NewBookingService(
		txManager, bookingRepo, normalizer, lockManager, slotCache, cfg.Booking.SlotCapacity,
	)
	catalogService := application.NewCatalogService(restaurantRepo)

	reservationHandler := handler.NewReservationHandler(bookingService)
	restaurantHandler := handler.NewRestaurantHandler(catalogService)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations", reservationHandler.List)
	v1.GET("/reservations/:id", reservationHandler.GetByID)
	v1.PUT("/reservations/:id", reservationHandler.Update)
	v1.DELETE("/reservations/:id", reservationHandler.Cancel)
	v1.GET("/slots/availability", reservationHandler.Availability)

	v1.GET("/restaurants/top-rated", restaurantHandler.ListTopRated)
	v1.GET("/restaurants/zip/:zip", restaurantHandler.ListByZipCode)
	v1.GET("/restaurants/cuisine/:type", restaurantHandler.ListByCuisine)
	v1.GET("/restaurants/:id", restaurantHandler.GetByID)
	v1.GET("/menu-items/under/:price", restaurantHandler.ListMenuItemsUnder)

	testServer = &TestServer{Echo: e}

	// テスト実行
	code := m.Run()

	// 最終クリーンアップ
	cleanupTables()
	redisClient.Close()
	db.Close()

	os.Exit(code)
}

// cleanupTables はテーブルをクリーンアップ
func cleanupTables() {
	testDB.Exec("TRUNCATE TABLE restaurant_reservations, reservations RESTART IDENTITY CASCADE")
	testDB.Exec("TRUNCATE TABLE menu_items, restaurants RESTART IDENTITY CASCADE")
	redisClient.FlushDB(context.Background())
}

// getTestServer は共有サーバーを取得（テスト前にテーブルをクリーンアップ）
func getTestServer(t *testing.T) *TestServer {
	t.Helper()
	if testServer == nil {
		t.Skip("テスト環境が利用できません")
	}
	cleanupTables()
	return testServer
}
