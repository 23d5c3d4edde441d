package main

import (
	"context"
	"hash/fnv"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/api"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/api/handler"
	apimiddleware "github.com/mouadzeghraoui/cinema-booking-api/internal/api/middleware"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/pricing"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/memory"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/moviedata"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/postgres"
	redisinfra "github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/redis"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/logger"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/metrics"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/worker"
)

func main() {
	// .env があれば読み込む（なくてもよい）
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.NewLogger(os.Getenv("APP_ENV"))
	logger.Set(log)
	defer logger.Sync()

	m := metrics.Init()

	// インメモリストア
	catalogStore := memory.NewCatalogStore(memory.SeedMovies())

	shape := seat.Shape{
		Rows:        cfg.Booking.Rows,
		SeatsPerRow: cfg.Booking.SeatsPerRow,
		PremiumRows: cfg.Booking.PremiumRows,
		VIPRows:     cfg.Booking.VIPRows,
	}
	// 座席マップは上映回IDをシードに生成する。同じ上映回は再起動しても
	// 同じ初期配置になる。
	seatMapFactory := func(st *showtime.Showtime) *seat.Map {
		h := fnv.New64a()
		h.Write([]byte(st.ID))
		rng := rand.New(rand.NewSource(int64(h.Sum64())))
		priceFor := func(class seat.Class) decimal.Decimal {
			return pricing.Resolve(class, string(st.Format), st.StartTime)
		}
		return seat.Generate(shape, priceFor, cfg.Booking.OccupancyRatio, rng)
	}
	showtimeStore := memory.NewShowtimeStore(seatMapFactory)
	bookingStore := memory.NewBookingStore()

	// Redis（任意、空席数キャッシュ）
	var cache *redisinfra.AvailabilityCache
	if cfg.Redis.Enabled {
		client, err := redisinfra.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis接続に失敗（キャッシュ無効で続行）", zap.Error(err))
		} else {
			cache = redisinfra.NewAvailabilityCache(client)
			logger.Info("Redis接続完了", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// PostgreSQL（任意、予約の監査アーカイブ）
	var archive application.BookingArchiver
	if cfg.Database.Enabled {
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			logger.Fatal("データベース接続に失敗", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.RunMigrations(db.DB, "migrations"); err != nil {
			logger.Fatal("マイグレーションに失敗", zap.Error(err))
		}
		archive = postgres.NewBookingArchive(db)
		logger.Info("予約アーカイブ有効", zap.String("db", cfg.Database.DBName))
	}

	// 外部映画情報プロバイダ（任意）
	var provider application.MovieSearcher
	if cfg.Provider.APIKey != "" {
		provider = moviedata.NewClient(&cfg.Provider)
	}

	// サービス層（rand はサービスごとに持つ）
	catalogService := application.NewCatalogService(catalogStore, provider,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	showtimeService := application.NewShowtimeService(catalogStore, showtimeStore, cache,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	bookingService := application.NewBookingService(bookingStore, showtimeStore, archive, cache,
		cfg.Booking, m, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Validator = api.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), apimiddleware.MetricsBasicAuth())

	api.RegisterRoutes(e, api.Handlers{
		Health:   handler.NewHealthHandler(),
		Movie:    handler.NewMovieHandler(catalogService),
		Showtime: handler.NewShowtimeHandler(showtimeService),
		Booking:  handler.NewBookingHandler(bookingService),
	})

	// 期限切れ予約スイーパー
	sweeper := worker.NewExpiredBookingSweeper(bookingService, cfg.Booking.SweepInterval)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	go sweeper.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("シャットダウン開始")
	workerCancel()
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}
	logger.Info("サーバーが正常にシャットダウンしました")
}
