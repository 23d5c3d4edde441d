package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound       = errors.New("予約が見つかりません")
	ErrInvalidState          = errors.New("現在の予約状態ではこの操作はできません")
	ErrBookingExpired        = errors.New("予約の有効期限が切れています")
	ErrPaymentDeclined       = errors.New("決済が拒否されました")
	ErrNoSeats               = errors.New("座席が選択されていません")
	ErrTooManySeats          = errors.New("1予約あたりの座席数は10席までです")
	ErrShowtimeIDRequired    = errors.New("上映回IDは必須です")
	ErrCustomerNameRequired  = errors.New("予約者名は必須です")
	ErrCustomerEmailRequired = errors.New("メールアドレスは必須です")
	ErrAmountMismatch        = errors.New("支払金額が予約合計と一致しません")
	ErrInvalidExpiry         = errors.New("有効期限が不正です")
)
