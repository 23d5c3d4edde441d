package showtime

import "errors"

// Showtime ドメインのエラー定義
var (
	ErrShowtimeNotFound   = errors.New("上映回が見つかりません")
	ErrShowtimeIDRequired = errors.New("上映回IDは必須です")
	ErrMovieIDRequired    = errors.New("映画IDは必須です")
	ErrInvalidTimeRange   = errors.New("上映時間の範囲が不正です")
)
