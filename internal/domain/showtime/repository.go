package showtime

import (
	"context"
	"time"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
)

// Repository は上映回と座席マップの永続化インターフェース。
// 座席マップの変更は WithSeatMap を通してのみ行い、実装は
// 上映回単位で呼び出しを直列化すること。
type Repository interface {
	// SaveSchedule は (映画, 日付) の上映回一覧を保存する。
	// 既に保存済みの場合は保存済みの一覧を返す（再生成しない）。
	SaveSchedule(ctx context.Context, movieID string, date time.Time, showtimes []*Showtime) ([]*Showtime, error)

	// GetSchedule は (映画, 日付) の上映回一覧を取得する
	GetSchedule(ctx context.Context, movieID string, date time.Time) ([]*Showtime, bool, error)

	// GetByID はIDから上映回を取得する
	GetByID(ctx context.Context, id string) (*Showtime, error)

	// WithSeatMap は上映回の座席マップを排他的に操作する。
	// マップは初回アクセス時に生成され、以後同じものが返される。
	WithSeatMap(ctx context.Context, id string, fn func(*seat.Map) error) error
}
