package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/davcho16/flavor-trail/internal/api"
	"github.com/davcho16/flavor-trail/internal/api/handler"
	custommw "github.com/davcho16/flavor-trail/internal/api/middleware"
	"github.com/davcho16/flavor-trail/internal/application"
	"github.com/davcho16/flavor-trail/internal/config"
	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
	"github.com/davcho16/flavor-trail/internal/infrastructure/postgres"
	redisinfra "github.com/davcho16/flavor-trail/internal/infrastructure/redis"
	"github.com/davcho16/flavor-trail/internal/pkg/logger"
	"github.com/davcho16/flavor-trail/internal/pkg/metrics"
	"github.com/davcho16/flavor-trail/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger(os.Getenv("APP_ENV"))
	logger.Set(log)
	defer logger.Sync()

	m := metrics.Init()

	// PostgreSQL 接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション（MIGRATIONS_PATH 設定時のみ）
	if path := os.Getenv("MIGRATIONS_PATH"); path != "" {
		if err := postgres.RunMigrations(db.DB, path); err != nil {
			log.Fatal("マイグレーション実行に失敗", zap.Error(err))
		}
		log.Info("マイグレーション完了", zap.String("path", path))
	}

	// Redis 接続
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	if err := redisinfra.Ping(ctx, redisClient); err != nil {
		log.Fatal("Redis接続に失敗", zap.Error(err))
	}

	// 時刻正規化（タイムゾーンは設定から）
	normalizer, err := timeslot.NewNormalizer(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("タイムゾーンの読み込みに失敗",
			zap.String("timezone", cfg.Booking.Timezone), zap.Error(err))
	}
	// リポジトリとサービス
	txManager := postgres.NewTxManager(db)
	bookingRepo := postgres.NewBookingRepository(db, normalizer.Location())
	restaurantRepo := postgres.NewRestaurantRepository(db)

	lockManager := redisinfra.NewLockManager(redisClient)
	slotCache := redisinfra.NewSlotCache(redisClient)

	bookingService := application.NewBookingService(
		txManager, bookingRepo, normalizer, lockManager, slotCache, cfg.Booking.SlotCapacity,
	)
	catalogService := application.NewCatalogService(restaurantRepo)

	// HTTP サーバー
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	custommw.SetupMiddleware(e)
	e.Use(custommw.PrometheusMiddleware(m))

	healthHandler := handler.NewHealthHandler()
	reservationHandler := handler.NewReservationHandler(bookingService)
	restaurantHandler := handler.NewRestaurantHandler(catalogService)

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

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommw.MetricsBasicAuth())

	// 予約数レポーター
	reporter := worker.NewOccupancyReporter(bookingRepo, 30*time.Second)
	go reporter.Start(ctx)

	// サーバー起動
	go func() {
		addr := ":" + cfg.Server.Port
		log.Info("サーバー起動", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("サーバーをシャットダウンしています")

	reporter.Stop()
	cancelCtx()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	log.Info("サーバーが正常にシャットダウンしました")
}
