package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
)

// Status は予約の状態を表す。pending_payment が初期状態で、
// confirmed / expired / failed は終端状態。終端状態からの遷移は許可されない。
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusExpired        Status = "expired"
	StatusFailed         Status = "failed"
)

// IsTerminal は終端状態かを返す
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusExpired || s == StatusFailed
}

// 1予約あたりの座席数の上限
const MaxSeats = 10

// Customer は予約者情報を表す
type Customer struct {
	Name  string
	Email string
	Phone string // 任意
}

// SeatDetail は予約時点の座席スナップショット（クラスと価格込み）を表す
type SeatDetail struct {
	Row    string
	Number int
	Class  seat.Class
	Price  decimal.Decimal
}

// ID は座席の識別子を返す
func (d SeatDetail) ID() seat.ID {
	return seat.ID{Row: d.Row, Number: d.Number}
}

// Payment は決済結果を表す。カード番号そのものは保持せず、下4桁のみを持つ。
type Payment struct {
	Method        string
	TransactionID string
	CardLastFour  string
	Amount        decimal.Decimal
	ProcessedAt   time.Time
}

// Ticket は確定済み予約の座席ごとの入場券を表す
type Ticket struct {
	ID   string
	Seat string // 例: "A1"
}

// Booking は予約エンティティを表す。予約は決済処理または期限切れ処理に
// よってのみ変更され、削除されることはない（監査用に保持）。
type Booking struct {
	ID               string
	ShowtimeID       string
	Seats            []SeatDetail
	Customer         Customer
	Subtotal         decimal.Decimal
	Fee              decimal.Decimal
	Total            decimal.Decimal
	Status           Status
	ConfirmationCode string
	Payment          *Payment
	Tickets          []Ticket
	CreatedAt        time.Time
	ExpiresAt        time.Time
	UpdatedAt        time.Time
}

// New は pending_payment 状態の新しい予約を作成する
func New(showtimeID string, seats []SeatDetail, customer Customer, fee decimal.Decimal, ttl time.Duration, now time.Time) *Booking {
	subtotal := decimal.Zero
	for _, s := range seats {
		subtotal = subtotal.Add(s.Price)
	}
	return &Booking{
		ID:         NewBookingID(),
		ShowtimeID: showtimeID,
		Seats:      seats,
		Customer:   customer,
		Subtotal:   subtotal,
		Fee:        fee,
		Total:      subtotal.Add(fee).Round(2),
		Status:     StatusPendingPayment,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		UpdatedAt:  now,
	}
}

// Clone は予約のディープコピーを返す。ストアが保持する実体とは独立した
// スナップショットで、呼び出し側はロックなしで参照できる。
func (b *Booking) Clone() *Booking {
	c := *b
	c.Seats = append([]SeatDetail(nil), b.Seats...)
	c.Tickets = append([]Ticket(nil), b.Tickets...)
	if b.Payment != nil {
		p := *b.Payment
		c.Payment = &p
	}
	return &c
}

// SeatIDs は予約座席の識別子一覧を返す
func (b *Booking) SeatIDs() []seat.ID {
	ids := make([]seat.ID, len(b.Seats))
	for i, s := range b.Seats {
		ids[i] = s.ID()
	}
	return ids
}

// IsExpired は予約が期限切れかを返す。期限ちょうどの時刻も期限切れ。
// pending のまま期限を過ぎた予約は明示的な遷移の前から論理的に
// 期限切れとして扱う。
func (b *Booking) IsExpired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// Confirm は決済成功を反映して予約を確定する
func (b *Booking) Confirm(p Payment, now time.Time) error {
	if b.Status != StatusPendingPayment {
		return ErrInvalidState
	}
	if b.IsExpired(now) {
		return ErrBookingExpired
	}
	b.Status = StatusConfirmed
	b.ConfirmationCode = NewConfirmationCode()
	b.Payment = &p
	b.Tickets = make([]Ticket, len(b.Seats))
	for i, s := range b.Seats {
		b.Tickets[i] = Ticket{ID: NewTicketID(), Seat: s.ID().String()}
	}
	b.UpdatedAt = now
	return nil
}

// Fail は決済失敗を反映する
func (b *Booking) Fail(now time.Time) error {
	if b.Status != StatusPendingPayment {
		return ErrInvalidState
	}
	b.Status = StatusFailed
	b.UpdatedAt = now
	return nil
}

// Expire は期限切れを反映する
func (b *Booking) Expire(now time.Time) error {
	if b.Status != StatusPendingPayment {
		return ErrInvalidState
	}
	b.Status = StatusExpired
	b.UpdatedAt = now
	return nil
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.ShowtimeID == "" {
		return ErrShowtimeIDRequired
	}
	if len(b.Seats) == 0 {
		return ErrNoSeats
	}
	if len(b.Seats) > MaxSeats {
		return ErrTooManySeats
	}
	if b.Customer.Name == "" {
		return ErrCustomerNameRequired
	}
	if b.Customer.Email == "" {
		return ErrCustomerEmailRequired
	}
	if !b.ExpiresAt.After(b.CreatedAt) {
		return ErrInvalidExpiry
	}
	return nil
}
