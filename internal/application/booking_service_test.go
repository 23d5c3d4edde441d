package application

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/pricing"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		Rows:               []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		SeatsPerRow:        12,
		PremiumRows:        []string{"E", "F", "G"},
		VIPRows:            []string{"H", "I", "J"},
		OccupancyRatio:     0, // テストでは全席空きから始める
		BookingFee:         decimal.NewFromFloat(1.50),
		HoldTTL:            10 * time.Minute,
		PaymentSuccessRate: 1.0,
		SweepInterval:      time.Minute,
	}
}

type bookingFixture struct {
	service       *BookingService
	showtimeStore *memory.ShowtimeStore
	bookingStore  *memory.BookingStore
	showtimeID    string
}

func newBookingFixture(t *testing.T, cfg config.BookingConfig) *bookingFixture {
	t.Helper()

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

	date := fixedNow.Truncate(24 * time.Hour)
	saved, err := showtimeStore.SaveSchedule(context.Background(), "m001", date,
		showtime.Generate("m001", date, 148, rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	service := NewBookingService(bookingStore, showtimeStore, nil, nil, cfg, nil,
		rand.New(rand.NewSource(1)))
	service.now = func() time.Time { return fixedNow }

	return &bookingFixture{
		service:       service,
		showtimeStore: showtimeStore,
		bookingStore:  bookingStore,
		showtimeID:    saved[0].ID,
	}
}

func (f *bookingFixture) availableSeats(t *testing.T) int {
	t.Helper()
	var available int
	err := f.showtimeStore.WithSeatMap(context.Background(), f.showtimeID, func(m *seat.Map) error {
		_, available = m.Counts()
		return nil
	})
	require.NoError(t, err)
	return available
}

func createInput(showtimeID string, seats ...seat.ID) CreateBookingInput {
	return CreateBookingInput{
		ShowtimeID: showtimeID,
		SeatIDs:    seats,
		Customer:   booking.Customer{Name: "Jane Doe", Email: "jane@example.com"},
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())

	b, err := f.service.CreateBooking(context.Background(),
		createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}, seat.ID{Row: "A", Number: 2}))
	require.NoError(t, err)

	assert.Equal(t, booking.StatusPendingPayment, b.Status)
	assert.Equal(t, fixedNow.Add(10*time.Minute), b.ExpiresAt)
	require.Len(t, b.Seats, 2)
	assert.Equal(t, seat.ClassStandard, b.Seats[0].Class)
	assert.Equal(t, "1.50", b.Fee.StringFixed(2))
	// 小計 = 座席価格の合計、合計 = 小計 + 手数料
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.Fee)))

	assert.Equal(t, 118, f.availableSeats(t))

	stored, err := f.bookingStore.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Same(t, b, stored)
}

func TestBookingService_CreateBooking_SeatConflict(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()
	target := seat.ID{Row: "B", Number: 3}

	_, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, target))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, createInput(f.showtimeID, target))
	assert.ErrorIs(t, err, seat.ErrSeatUnavailable)
	assert.Equal(t, 119, f.availableSeats(t))
}

func TestBookingService_CreateBooking_PartialConflictHoldsNothing(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "C", Number: 1}))
	require.NoError(t, err)

	// C1 が競合するため C2 も押さえられない
	_, err = f.service.CreateBooking(ctx,
		createInput(f.showtimeID, seat.ID{Row: "C", Number: 1}, seat.ID{Row: "C", Number: 2}))
	assert.ErrorIs(t, err, seat.ErrSeatUnavailable)
	assert.Equal(t, 119, f.availableSeats(t))
}

func TestBookingService_CreateBooking_Validation(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, createInput(f.showtimeID))
	assert.ErrorIs(t, err, booking.ErrNoSeats)

	tooMany := make([]seat.ID, booking.MaxSeats+1)
	for i := range tooMany {
		tooMany[i] = seat.ID{Row: "A", Number: i + 1}
	}
	_, err = f.service.CreateBooking(ctx, createInput(f.showtimeID, tooMany...))
	assert.ErrorIs(t, err, booking.ErrTooManySeats)

	_, err = f.service.CreateBooking(ctx, createInput("st_unknown", seat.ID{Row: "A", Number: 1}))
	assert.ErrorIs(t, err, showtime.ErrShowtimeNotFound)

	_, err = f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "Z", Number: 1}))
	assert.ErrorIs(t, err, seat.ErrSeatNotFound)
}

func TestBookingService_CreateBooking_ConcurrentSameSeat(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	target := seat.ID{Row: "E", Number: 5}

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.CreateBooking(context.Background(), createInput(f.showtimeID, target))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, seat.ErrSeatUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded, "同じ座席を取れるのは1予約だけ")
	assert.Equal(t, 119, f.availableSeats(t))
}

func TestBookingService_ProcessPayment_Success(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx,
		createInput(f.showtimeID, seat.ID{Row: "H", Number: 1}, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	paid, err := f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID:  b.ID,
		Method:     "credit_card",
		Amount:     b.Total,
		CardNumber: "4242 4242 4242 4242",
	})
	require.NoError(t, err)

	assert.Equal(t, booking.StatusConfirmed, paid.Status)
	assert.NotEmpty(t, paid.ConfirmationCode)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, "4242", paid.Payment.CardLastFour)
	assert.True(t, paid.Payment.Amount.Equal(b.Total))
	require.Len(t, paid.Tickets, 2)

	// 座席は booked のまま（空席には戻らない）
	assert.Equal(t, 118, f.availableSeats(t))
	err = f.showtimeStore.WithSeatMap(ctx, f.showtimeID, func(m *seat.Map) error {
		s, ok := m.Get(seat.ID{Row: "H", Number: 1})
		require.True(t, ok)
		assert.Equal(t, seat.StateBooked, s.State)
		return nil
	})
	require.NoError(t, err)
}

func TestBookingService_ProcessPayment_Declined(t *testing.T) {
	cfg := testBookingConfig()
	cfg.PaymentSuccessRate = 0 // 必ず拒否される
	f := newBookingFixture(t, cfg)
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	_, err = f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID: b.ID, Method: "credit_card", Amount: b.Total,
	})
	assert.ErrorIs(t, err, booking.ErrPaymentDeclined)

	stored, err := f.bookingStore.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusFailed, stored.Status)

	// 座席は即時解放される
	assert.Equal(t, 120, f.availableSeats(t))
}

func TestBookingService_ProcessPayment_AmountMismatch(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	_, err = f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID: b.ID, Method: "credit_card", Amount: decimal.NewFromFloat(1.00),
	})
	assert.ErrorIs(t, err, booking.ErrAmountMismatch)

	// 予約は pending のまま、座席も保持される
	stored, err := f.bookingStore.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPendingPayment, stored.Status)
	assert.Equal(t, 119, f.availableSeats(t))
}

func TestBookingService_ProcessPayment_Expired(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	// 有効期限を過ぎてから決済する
	f.service.now = func() time.Time { return fixedNow.Add(11 * time.Minute) }
	_, err = f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID: b.ID, Method: "credit_card", Amount: b.Total,
	})
	assert.ErrorIs(t, err, booking.ErrBookingExpired)

	stored, err := f.bookingStore.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusExpired, stored.Status)
	assert.Equal(t, 120, f.availableSeats(t))
}

func TestBookingService_ProcessPayment_Terminal(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	input := ProcessPaymentInput{BookingID: b.ID, Method: "credit_card", Amount: b.Total}
	_, err = f.service.ProcessPayment(ctx, input)
	require.NoError(t, err)

	// 確定済みの予約は再決済できない
	_, err = f.service.ProcessPayment(ctx, input)
	assert.ErrorIs(t, err, booking.ErrInvalidState)
}

func TestBookingService_ProcessPayment_NotFound(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	_, err := f.service.ProcessPayment(context.Background(), ProcessPaymentInput{
		BookingID: "BK-UNKNOWN", Method: "credit_card", Amount: decimal.NewFromFloat(10),
	})
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingService_ExpireStaleBookings(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	expired, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)
	_, err = f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 2}))
	require.NoError(t, err)

	f.service.now = func() time.Time { return fixedNow.Add(11 * time.Minute) }
	count, err := f.service.ExpireStaleBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, err := f.bookingStore.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusExpired, stored.Status)
	assert.Equal(t, 120, f.availableSeats(t))

	// 2回目のスイープは何もしない
	count, err = f.service.ExpireStaleBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBookingService_GetBooking(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	b, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	got, err := f.service.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = f.service.GetBooking(ctx, "BK-UNKNOWN")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingService_GetBookingはスナップショットを返す(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "A", Number: 1}))
	require.NoError(t, err)

	before, err := f.service.GetBooking(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID:  created.ID,
		Method:     "credit_card",
		Amount:     created.Total,
		CardNumber: "4242 4242 4242 4242",
	})
	require.NoError(t, err)

	// 決済前に取得したスナップショットは変化しない
	assert.Equal(t, booking.StatusPendingPayment, before.Status)
	assert.Nil(t, before.Payment)

	after, err := f.service.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, after.Status)
	require.NotNil(t, after.Payment)
}

// 決済・期限切れ処理と並行してステータス照会が走っても安全であること
func TestBookingService_並行する照会と決済(t *testing.T) {
	f := newBookingFixture(t, testBookingConfig())
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, createInput(f.showtimeID, seat.ID{Row: "B", Number: 1}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				got, err := f.service.GetBooking(ctx, created.ID)
				if err != nil {
					t.Error(err)
					return
				}
				_ = got.Status
				_ = got.ConfirmationCode
				if got.Payment != nil {
					_ = got.Payment.TransactionID
				}
				for _, tk := range got.Tickets {
					_ = tk.Seat
				}
			}
		}()
	}

	close(start)
	_, err = f.service.ProcessPayment(ctx, ProcessPaymentInput{
		BookingID:  created.ID,
		Method:     "credit_card",
		Amount:     created.Total,
		CardNumber: "4242 4242 4242 4242",
	})
	require.NoError(t, err)
	wg.Wait()
}

func TestCardLastFour(t *testing.T) {
	assert.Equal(t, "4242", cardLastFour("4242424242424242"))
	assert.Equal(t, "1111", cardLastFour("4111-1111-1111-1111"))
	assert.Equal(t, "123", cardLastFour("123"))
	assert.Equal(t, "", cardLastFour(""))
}

