package showtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Format は上映フォーマットを表す
type Format string

const (
	Format2D   Format = "2D"
	Format3D   Format = "3D"
	FormatIMAX Format = "IMAX"
	Format4DX  Format = "4DX"
)

// Showtime は上映回エンティティを表す。終了時刻は開始時刻 + 上映時間で計算され、
// 価格はスタンダード席の基準価格（フォーマット・時間帯の加算込み）を示す。
type Showtime struct {
	ID        string
	MovieID   string
	StartTime time.Time
	EndTime   time.Time
	Theater   string
	Screen    string
	Format    Format
	Price     decimal.Decimal
}

// Validate は上映回の検証を行う
func (s *Showtime) Validate() error {
	if s.ID == "" {
		return ErrShowtimeIDRequired
	}
	if s.MovieID == "" {
		return ErrMovieIDRequired
	}
	if !s.EndTime.After(s.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
