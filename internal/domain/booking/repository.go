package booking

import (
	"context"
	"time"
)

// Repository は予約ストアのインターフェース。予約は削除されない。
type Repository interface {
	// Create は新しい予約を保存する
	Create(ctx context.Context, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// WithBooking は予約を排他的に操作する。同一予約に対する決済処理と
	// 期限切れ処理の競合を防ぐため、実装は予約単位で直列化すること。
	WithBooking(ctx context.Context, id string, fn func(*Booking) error) error

	// ListExpiredPendingIDs は期限切れの pending_payment 予約のID一覧を返す
	ListExpiredPendingIDs(ctx context.Context, now time.Time) ([]string, error)
}
