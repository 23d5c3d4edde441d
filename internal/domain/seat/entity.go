package seat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Class は座席クラスを表す
type Class string

const (
	ClassStandard Class = "standard"
	ClassPremium  Class = "premium"
	ClassVIP      Class = "vip"
)

// State は座席の状態を表す
type State string

const (
	StateAvailable State = "available"
	StateHeld      State = "held"
	StateBooked    State = "booked"
)

// ID は座席の識別子（列記号 + 座席番号）を表す
type ID struct {
	Row    string
	Number int
}

func (id ID) String() string {
	return fmt.Sprintf("%s%d", id.Row, id.Number)
}

// ParseID は "A1" 形式の文字列から座席識別子を解析する
func ParseID(s string) (ID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil || n <= 0 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidSeatID, s)
	}
	return ID{Row: s[:i], Number: n}, nil
}

// Seat は上映回の座席マップに属する座席を表す。クラスと価格は生成時に確定し、
// 状態のみが予約処理によって変化する。
type Seat struct {
	Row    string
	Number int
	Class  Class
	State  State
	Price  decimal.Decimal
	HeldBy string // 保持中の予約ID（held/booked のとき設定）
}

// ID は座席の識別子を返す
func (s *Seat) ID() ID {
	return ID{Row: s.Row, Number: s.Number}
}

// IsAvailable は座席が空いているかを返す
func (s *Seat) IsAvailable() bool {
	return s.State == StateAvailable
}

// Hold は座席を仮押さえ状態にする
func (s *Seat) Hold(bookingID string) error {
	if s.State != StateAvailable {
		return fmt.Errorf("%w: %s", ErrSeatUnavailable, s.ID())
	}
	s.State = StateHeld
	s.HeldBy = bookingID
	return nil
}

// Book は仮押さえ中の座席を確定状態にする
func (s *Seat) Book(bookingID string) error {
	if s.State != StateHeld || s.HeldBy != bookingID {
		return fmt.Errorf("%w: %s", ErrSeatNotHeld, s.ID())
	}
	s.State = StateBooked
	return nil
}

// Release は座席を解放する。別の予約が保持する座席と booked の座席は変更しない。
func (s *Seat) Release(bookingID string) {
	if s.State != StateHeld || s.HeldBy != bookingID {
		return
	}
	s.State = StateAvailable
	s.HeldBy = ""
}
