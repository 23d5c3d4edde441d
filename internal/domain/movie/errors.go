package movie

import "errors"

// Movie ドメインのエラー定義
var (
	ErrMovieNotFound      = errors.New("映画が見つかりません")
	ErrMovieIDRequired    = errors.New("映画IDは必須です")
	ErrMovieTitleRequired = errors.New("タイトルは必須です")
	ErrInvalidDuration    = errors.New("上映時間が不正です")
)
