package e2e

import (
	"math/rand"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/api"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/api/handler"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/api/middleware"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/pricing"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/memory"
)

// TestServer はE2Eテスト用のサーバー。外部依存なしで全てインメモリで動く。
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer はテスト用サーバーを作成する。決済は常に成功し、
// 初期着席率は0（全席空き）。
func NewTestServer(t *testing.T, cfg config.BookingConfig) *TestServer {
	t.Helper()

	catalogStore := memory.NewCatalogStore(memory.SeedMovies())

	shape := seat.Shape{
		Rows: cfg.Rows, SeatsPerRow: cfg.SeatsPerRow,
		PremiumRows: cfg.PremiumRows, VIPRows: cfg.VIPRows,
	}
	factory := func(st *showtime.Showtime) *seat.Map {
		priceFor := func(class seat.Class) decimal.Decimal {
			return pricing.Resolve(class, string(st.Format), st.StartTime)
		}
		return seat.Generate(shape, priceFor, cfg.OccupancyRatio, rand.New(rand.NewSource(1)))
	}
	showtimeStore := memory.NewShowtimeStore(factory)
	bookingStore := memory.NewBookingStore()

	catalogService := application.NewCatalogService(catalogStore, nil, rand.New(rand.NewSource(1)))
	showtimeService := application.NewShowtimeService(catalogStore, showtimeStore, nil, rand.New(rand.NewSource(1)))
	bookingService := application.NewBookingService(bookingStore, showtimeStore, nil, nil, cfg, nil, rand.New(rand.NewSource(1)))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Validator = api.NewValidator()
	middleware.SetupMiddleware(e)

	api.RegisterRoutes(e, api.Handlers{
		Health:   handler.NewHealthHandler(),
		Movie:    handler.NewMovieHandler(catalogService),
		Showtime: handler.NewShowtimeHandler(showtimeService),
		Booking:  handler.NewBookingHandler(bookingService),
	})

	return &TestServer{Echo: e}
}

func testConfig() config.BookingConfig {
	return config.BookingConfig{
		Rows:               []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		SeatsPerRow:        12,
		PremiumRows:        []string{"E", "F", "G"},
		VIPRows:            []string{"H", "I", "J"},
		OccupancyRatio:     0,
		BookingFee:         decimal.NewFromFloat(1.50),
		HoldTTL:            10 * time.Minute,
		PaymentSuccessRate: 1.0,
		SweepInterval:      time.Minute,
	}
}
