package application

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	redisinfra "github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/redis"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/logger"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/metrics"
)

// BookingArchiver は確定・失効した予約を監査用ストレージへ書き出す
// インターフェース。nil の場合はアーカイブしない。
type BookingArchiver interface {
	Save(ctx context.Context, b *booking.Booking) error
}

// BookingService は予約の作成・決済・期限切れ処理を提供する。
// ロックの取得順は常に 予約 → 座席マップ で、逆順は存在しない。
type BookingService struct {
	bookingRepo  booking.Repository
	showtimeRepo showtime.Repository
	archive      BookingArchiver
	cache        *redisinfra.AvailabilityCache
	cfg          config.BookingConfig
	metrics      *metrics.Metrics

	now func() time.Time

	randMu sync.Mutex
	rng    *rand.Rand
}

// NewBookingService は新しいBookingServiceを作成する。archive / cache / m は
// 任意で、nil の場合は該当機能が無効になる。
func NewBookingService(
	br booking.Repository,
	sr showtime.Repository,
	archive BookingArchiver,
	cache *redisinfra.AvailabilityCache,
	cfg config.BookingConfig,
	m *metrics.Metrics,
	rng *rand.Rand,
) *BookingService {
	return &BookingService{
		bookingRepo:  br,
		showtimeRepo: sr,
		archive:      archive,
		cache:        cache,
		cfg:          cfg,
		metrics:      m,
		now:          time.Now,
		rng:          rng,
	}
}

type CreateBookingInput struct {
	ShowtimeID string
	SeatIDs    []seat.ID
	Customer   booking.Customer
}

// CreateBooking は座席を仮押さえして pending_payment の予約を作成する。
// 1席でも押さえられない場合は何も変更されない。
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	if len(input.SeatIDs) == 0 {
		return nil, booking.ErrNoSeats
	}
	if len(input.SeatIDs) > booking.MaxSeats {
		return nil, booking.ErrTooManySeats
	}

	st, err := s.showtimeRepo.GetByID(ctx, input.ShowtimeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var bk *booking.Booking
	err = s.showtimeRepo.WithSeatMap(ctx, st.ID, func(m *seat.Map) error {
		// 予約時点のクラス・価格をスナップショットする
		details := make([]booking.SeatDetail, 0, len(input.SeatIDs))
		for _, id := range input.SeatIDs {
			se, ok := m.Get(id)
			if !ok {
				return fmt.Errorf("%w: %s", seat.ErrSeatNotFound, id)
			}
			details = append(details, booking.SeatDetail{
				Row:    se.Row,
				Number: se.Number,
				Class:  se.Class,
				Price:  se.Price,
			})
		}

		b := booking.New(st.ID, details, input.Customer, s.cfg.BookingFee, s.cfg.HoldTTL, now)
		if err := b.Validate(); err != nil {
			return err
		}
		if _, err := m.HoldSeats(input.SeatIDs, b.ID); err != nil {
			return err
		}
		bk = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Create でストアに公開した後は bk を直接触らない（決済処理・
	// 期限切れ処理と競合する）。以降はスナップショットを使う。
	snap := bk.Clone()
	if err := s.bookingRepo.Create(ctx, bk); err != nil {
		s.releaseSeats(ctx, snap)
		return nil, err
	}

	s.invalidateCache(ctx, snap.ShowtimeID)
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(string(booking.StatusPendingPayment)).Inc()
		s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusPendingPayment)).Inc()
	}

	logger.Info("予約を作成",
		zap.String("booking_id", snap.ID),
		zap.String("showtime_id", snap.ShowtimeID),
		zap.Int("seats", len(snap.Seats)),
		zap.String("total", snap.Total.StringFixed(2)),
	)
	return snap, nil
}

type ProcessPaymentInput struct {
	BookingID  string
	Method     string
	Amount     decimal.Decimal
	CardNumber string
}

// ProcessPayment は予約の決済を処理する。成功時は予約を確定して座席を
// 本予約にし、失敗時は座席を解放して予約を failed にする。
// 期限切れの予約はこの時点で expired へ遷移し、ErrBookingExpired を返す。
func (s *BookingService) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*booking.Booking, error) {
	now := s.now()
	var result *booking.Booking

	err := s.bookingRepo.WithBooking(ctx, input.BookingID, func(b *booking.Booking) error {
		if b.Status.IsTerminal() {
			return booking.ErrInvalidState
		}

		// 掃除ワーカーより先に決済が来た場合もここで失効させる
		if b.IsExpired(now) {
			if err := b.Expire(now); err != nil {
				return err
			}
			s.releaseSeats(ctx, b)
			s.invalidateCache(ctx, b.ShowtimeID)
			s.archiveBooking(ctx, b)
			s.recordTransition(b.Status)
			return booking.ErrBookingExpired
		}

		if !input.Amount.Equal(b.Total) {
			return booking.ErrAmountMismatch
		}

		if !s.paymentSucceeds() {
			if err := b.Fail(now); err != nil {
				return err
			}
			s.releaseSeats(ctx, b)
			s.invalidateCache(ctx, b.ShowtimeID)
			s.archiveBooking(ctx, b)
			s.recordTransition(b.Status)
			if s.metrics != nil {
				s.metrics.PaymentsTotal.WithLabelValues("declined").Inc()
			}
			logger.Info("決済失敗", zap.String("booking_id", b.ID))
			return booking.ErrPaymentDeclined
		}

		p := booking.Payment{
			Method:        input.Method,
			TransactionID: booking.NewTransactionID(),
			CardLastFour:  cardLastFour(input.CardNumber),
			Amount:        b.Total,
			ProcessedAt:   now,
		}
		if err := b.Confirm(p, now); err != nil {
			return err
		}
		if err := s.bookSeats(ctx, b); err != nil {
			return err
		}
		s.invalidateCache(ctx, b.ShowtimeID)
		s.archiveBooking(ctx, b)
		s.recordTransition(b.Status)
		if s.metrics != nil {
			s.metrics.PaymentsTotal.WithLabelValues("success").Inc()
		}

		logger.Info("予約を確定",
			zap.String("booking_id", b.ID),
			zap.String("confirmation_code", b.ConfirmationCode),
			zap.String("transaction_id", p.TransactionID),
		)
		result = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetBooking はIDから予約を取得する
func (s *BookingService) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ExpireStaleBookings は期限切れの pending_payment 予約を expired に遷移させ、
// 保持していた座席を解放する。遷移した件数を返す。
func (s *BookingService) ExpireStaleBookings(ctx context.Context) (int, error) {
	now := s.now()
	ids, err := s.bookingRepo.ListExpiredPendingIDs(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		err := s.bookingRepo.WithBooking(ctx, id, func(b *booking.Booking) error {
			// 決済処理と競合した場合は状態が変わっている
			if b.Status != booking.StatusPendingPayment || !b.IsExpired(now) {
				return nil
			}
			if err := b.Expire(now); err != nil {
				return err
			}
			s.releaseSeats(ctx, b)
			s.invalidateCache(ctx, b.ShowtimeID)
			s.archiveBooking(ctx, b)
			s.recordTransition(b.Status)
			if s.metrics != nil {
				s.metrics.ExpiredBookingsTotal.Inc()
			}
			expired++
			return nil
		})
		if err != nil {
			logger.Error("期限切れ処理に失敗", zap.String("booking_id", id), zap.Error(err))
		}
	}
	return expired, nil
}

func (s *BookingService) paymentSucceeds() bool {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rng.Float64() < s.cfg.PaymentSuccessRate
}

func (s *BookingService) releaseSeats(ctx context.Context, b *booking.Booking) {
	err := s.showtimeRepo.WithSeatMap(ctx, b.ShowtimeID, func(m *seat.Map) error {
		m.ReleaseSeats(b.SeatIDs(), b.ID)
		return nil
	})
	if err != nil {
		logger.Error("座席解放に失敗", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func (s *BookingService) bookSeats(ctx context.Context, b *booking.Booking) error {
	return s.showtimeRepo.WithSeatMap(ctx, b.ShowtimeID, func(m *seat.Map) error {
		return m.BookSeats(b.SeatIDs(), b.ID)
	})
}

func (s *BookingService) invalidateCache(ctx context.Context, showtimeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, showtimeID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Error(err))
	}
}

func (s *BookingService) archiveBooking(ctx context.Context, b *booking.Booking) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, b); err != nil {
		logger.Warn("予約アーカイブに失敗", zap.String("booking_id", b.ID), zap.Error(err))
	}
}

func (s *BookingService) recordTransition(to booking.Status) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingsTotal.WithLabelValues(string(to)).Inc()
	s.metrics.ActiveBookings.WithLabelValues(string(booking.StatusPendingPayment)).Dec()
}

// cardLastFour はカード番号から下4桁を取り出す。番号そのものは保持しない。
func cardLastFour(cardNumber string) string {
	digits := make([]rune, 0, len(cardNumber))
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
