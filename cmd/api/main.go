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

	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api/handler"
	apimiddleware "github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/api/middleware"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/application"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/config"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/infrastructure/postgres"
	redisinfra "github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/infrastructure/redis"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/clock"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/logger"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/pkg/metrics"
	"github.com/nguyendazero/Booking-Hotel-Server-sub000/internal/worker"
)

func main() {
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(cfg.Server.Env))
	defer logger.Sync()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis接続
	redisClient, err := redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Redis接続に失敗", zap.Error(err))
	}
	defer redisClient.Close()

	// メトリクス初期化
	m := metrics.Init()

	// リポジトリ
	accountRepo := postgres.NewAccountRepository(db)
	hotelRepo := postgres.NewHotelRepository(db)
	discountRepo := postgres.NewDiscountRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txManager := postgres.NewTxManager(db)

	// Redisコンポーネント
	lockManager := redisinfra.NewLockManager(redisClient)
	hotelCache := redisinfra.NewHotelCache(redisClient)
	tokenStore := redisinfra.NewTokenStore(redisClient)

	clk := clock.New()

	// アプリケーションサービス
	accountService := application.NewAccountService(accountRepo, clk)
	hotelService := application.NewHotelService(hotelRepo, discountRepo, hotelCache, clk)
	bookingService := application.NewBookingService(
		txManager, bookingRepo, hotelRepo, discountRepo, accountRepo,
		lockManager, clk, m,
	)

	// 滞在進行ワーカー
	stayWorker := worker.NewStayProgressWorker(bookingService, cfg.Worker.StayProgressInterval)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	go stayWorker.Start(workerCtx)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	// ハンドラー
	accountHandler := handler.NewAccountHandler(accountService)
	hotelHandler := handler.NewHotelHandler(hotelService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	healthHandler := handler.NewHealthHandler()

	auth := apimiddleware.BearerAuth(tokenStore)

	// ルーティング
	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/accounts", accountHandler.Register)
	v1.GET("/accounts/me", accountHandler.Me, auth)

	v1.GET("/hotels", hotelHandler.List)
	v1.GET("/hotels/:id", hotelHandler.GetByID)
	v1.GET("/hotels/:id/discounts", hotelHandler.ListDiscountPeriods)
	v1.POST("/hotels", hotelHandler.Create, auth)
	v1.POST("/hotels/:id/discounts", hotelHandler.AddDiscountPeriod, auth)
	v1.DELETE("/hotels/:id/discounts/:periodId", hotelHandler.RemoveDiscountPeriod, auth)

	v1.POST("/bookings", bookingHandler.Create, auth)
	v1.GET("/bookings", bookingHandler.ListMine, auth)
	v1.GET("/bookings/:id", bookingHandler.GetByID, auth)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel, auth)
	v1.POST("/bookings/:id/confirm", bookingHandler.Confirm, auth)
	v1.POST("/bookings/:id/checkin", bookingHandler.CheckIn, auth)
	v1.POST("/bookings/:id/checkout", bookingHandler.CheckOut, auth)
	v1.GET("/hotels/:id/bookings", bookingHandler.ListForHotel, auth)
	v1.GET("/hotels/:id/reservations", bookingHandler.ListReservationsForHotel, auth)
	v1.GET("/hotels/:id/rating-eligibility", bookingHandler.RatingEligibility, auth)

	// Prometheusメトリクス
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimiddleware.MetricsBasicAuth())

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています")

	// ワーカー停止
	workerCancel()
	stayWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
