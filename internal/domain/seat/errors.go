package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatUnavailable = errors.New("座席が空いていません")
	ErrSeatNotFound    = errors.New("座席が見つかりません")
	ErrSeatNotHeld     = errors.New("座席は仮押さえされていません")
	ErrInvalidSeatID   = errors.New("座席IDの形式が不正です")
)
