package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
)

// bookingRecord は1件の予約を保持する。mu が同一予約に対する
// 決済処理と期限切れ処理の競合を防ぐ。
type bookingRecord struct {
	mu      sync.Mutex
	booking *booking.Booking
}

// BookingStore はインメモリの予約ストア。予約は削除されず、
// ステータス照会のために保持され続ける。
type BookingStore struct {
	mu   sync.RWMutex
	byID map[string]*bookingRecord
}

// NewBookingStore は新しいBookingStoreを作成する
func NewBookingStore() *BookingStore {
	return &BookingStore{byID: make(map[string]*bookingRecord)}
}

// Create は新しい予約を保存する
func (s *BookingStore) Create(ctx context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[b.ID] = &bookingRecord{booking: b}
	return nil
}

// GetByID はIDから予約のスナップショットを取得する。保持中の実体を
// そのまま返すと決済処理・期限切れ処理と読み取りが競合するため、
// ロック下で取ったコピーを返す。
func (s *BookingStore) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	s.mu.RLock()
	rec, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, booking.ErrBookingNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.booking.Clone(), nil
}

// WithBooking は予約を排他的に操作する
func (s *BookingStore) WithBooking(ctx context.Context, id string, fn func(*booking.Booking) error) error {
	s.mu.RLock()
	rec, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return booking.ErrBookingNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return fn(rec.booking)
}

// ListExpiredPendingIDs は期限切れの pending_payment 予約のID一覧を返す。
// スナップショットのため、呼び出し側は WithBooking で状態を再確認すること。
func (s *BookingStore) ListExpiredPendingIDs(ctx context.Context, now time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, rec := range s.byID {
		rec.mu.Lock()
		expired := rec.booking.Status == booking.StatusPendingPayment && rec.booking.IsExpired(now)
		rec.mu.Unlock()
		if expired {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var _ booking.Repository = (*BookingStore)(nil)
