package seat

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
)

// Shape は劇場の座席配置（列記号・列あたり座席数・列→クラス対応）を表す
type Shape struct {
	Rows        []string
	SeatsPerRow int
	PremiumRows []string
	VIPRows     []string
}

// DefaultShape は既定の座席配置を返す（A〜J の10列 × 12席、
// E〜G プレミアム、H〜J VIP）
func DefaultShape() Shape {
	return Shape{
		Rows:        []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
		SeatsPerRow: 12,
		PremiumRows: []string{"E", "F", "G"},
		VIPRows:     []string{"H", "I", "J"},
	}
}

// ClassFor は列記号から座席クラスを決定する
func (sh Shape) ClassFor(row string) Class {
	for _, r := range sh.VIPRows {
		if r == row {
			return ClassVIP
		}
	}
	for _, r := range sh.PremiumRows {
		if r == row {
			return ClassPremium
		}
	}
	return ClassStandard
}

// Row は座席マップの1列を表す
type Row struct {
	Label string
	Seats []*Seat
}

// Map は1つの上映回の座席マップを表す。生成は上映回ごとに一度きりで、
// 以後は予約処理による状態変化のみが反映される。
// Map 自体は排他制御を持たない。呼び出し側（ストア）が上映回単位で
// 直列化すること。
type Map struct {
	rows  []Row
	index map[ID]*Seat
}

// Generate は座席マップを生成する。priceFor はクラスごとの座席価格、
// occupancy は初期の着席率で、座席ごとに独立に抽選される。
func Generate(shape Shape, priceFor func(Class) decimal.Decimal, occupancy float64, rng *rand.Rand) *Map {
	m := &Map{
		rows:  make([]Row, 0, len(shape.Rows)),
		index: make(map[ID]*Seat, len(shape.Rows)*shape.SeatsPerRow),
	}
	for _, label := range shape.Rows {
		row := Row{Label: label, Seats: make([]*Seat, 0, shape.SeatsPerRow)}
		class := shape.ClassFor(label)
		for n := 1; n <= shape.SeatsPerRow; n++ {
			state := StateAvailable
			if rng.Float64() < occupancy {
				state = StateBooked
			}
			s := &Seat{
				Row:    label,
				Number: n,
				Class:  class,
				State:  state,
				Price:  priceFor(class),
			}
			row.Seats = append(row.Seats, s)
			m.index[s.ID()] = s
		}
		m.rows = append(m.rows, row)
	}
	return m
}

// Rows は列順の座席マップを返す
func (m *Map) Rows() []Row {
	return m.rows
}

// Get はIDから座席を取得する
func (m *Map) Get(id ID) (*Seat, bool) {
	s, ok := m.index[id]
	return s, ok
}

// Counts は総座席数と空席数を返す
func (m *Map) Counts() (total, available int) {
	for _, s := range m.index {
		total++
		if s.IsAvailable() {
			available++
		}
	}
	return total, available
}

// HoldSeats は指定座席を一括で仮押さえする。全席が空いている場合のみ成立し、
// 1席でも空いていなければ何も変更せず、競合した座席を列挙したエラーを返す。
func (m *Map) HoldSeats(ids []ID, bookingID string) ([]*Seat, error) {
	seats := make([]*Seat, 0, len(ids))
	var conflicts []string
	for _, id := range ids {
		s, ok := m.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSeatNotFound, id)
		}
		if !s.IsAvailable() {
			conflicts = append(conflicts, id.String())
			continue
		}
		seats = append(seats, s)
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, strings.Join(conflicts, ", "))
	}
	for _, s := range seats {
		if err := s.Hold(bookingID); err != nil {
			return nil, err
		}
	}
	return seats, nil
}

// BookSeats は仮押さえ中の座席を確定状態にする
func (m *Map) BookSeats(ids []ID, bookingID string) error {
	for _, id := range ids {
		s, ok := m.index[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrSeatNotFound, id)
		}
		if err := s.Book(bookingID); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseSeats は予約が保持する座席を解放する
func (m *Map) ReleaseSeats(ids []ID, bookingID string) {
	for _, id := range ids {
		if s, ok := m.index[id]; ok {
			s.Release(bookingID)
		}
	}
}
