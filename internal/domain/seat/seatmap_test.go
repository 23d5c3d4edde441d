package seat

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatPrice(Class) decimal.Decimal {
	return decimal.NewFromFloat(12.00)
}

// 全席空きの座席マップを生成する
func newEmptyMap(t *testing.T) *Map {
	t.Helper()
	return Generate(DefaultShape(), flatPrice, 0, rand.New(rand.NewSource(1)))
}

func TestDefaultShape_ClassFor(t *testing.T) {
	sh := DefaultShape()
	assert.Equal(t, ClassStandard, sh.ClassFor("A"))
	assert.Equal(t, ClassStandard, sh.ClassFor("D"))
	assert.Equal(t, ClassPremium, sh.ClassFor("E"))
	assert.Equal(t, ClassPremium, sh.ClassFor("G"))
	assert.Equal(t, ClassVIP, sh.ClassFor("H"))
	assert.Equal(t, ClassVIP, sh.ClassFor("J"))
}

func TestGenerate(t *testing.T) {
	m := Generate(DefaultShape(), flatPrice, 0.3, rand.New(rand.NewSource(42)))

	total, available := m.Counts()
	assert.Equal(t, 120, total)
	assert.Less(t, available, 120, "一部の座席は着席済みになる")
	assert.Greater(t, available, 0)

	rows := m.Rows()
	require.Len(t, rows, 10)
	assert.Equal(t, "A", rows[0].Label)
	assert.Equal(t, "J", rows[9].Label)
	require.Len(t, rows[0].Seats, 12)
}

func TestGenerate_Deterministic(t *testing.T) {
	m1 := Generate(DefaultShape(), flatPrice, 0.3, rand.New(rand.NewSource(7)))
	m2 := Generate(DefaultShape(), flatPrice, 0.3, rand.New(rand.NewSource(7)))

	for _, row := range m1.Rows() {
		for _, s := range row.Seats {
			other, ok := m2.Get(s.ID())
			require.True(t, ok)
			assert.Equal(t, s.State, other.State)
		}
	}
}

func TestGenerate_FullOccupancy(t *testing.T) {
	m := Generate(DefaultShape(), flatPrice, 1.0, rand.New(rand.NewSource(1)))
	total, available := m.Counts()
	assert.Equal(t, 120, total)
	assert.Equal(t, 0, available)
}

func TestMap_HoldSeats(t *testing.T) {
	m := newEmptyMap(t)
	ids := []ID{{Row: "A", Number: 1}, {Row: "A", Number: 2}}

	held, err := m.HoldSeats(ids, "BK-TEST01")
	require.NoError(t, err)
	require.Len(t, held, 2)

	for _, id := range ids {
		s, ok := m.Get(id)
		require.True(t, ok)
		assert.Equal(t, StateHeld, s.State)
		assert.Equal(t, "BK-TEST01", s.HeldBy)
	}
}

func TestMap_HoldSeats_AllOrNothing(t *testing.T) {
	m := newEmptyMap(t)
	_, err := m.HoldSeats([]ID{{Row: "B", Number: 5}}, "BK-OTHER")
	require.NoError(t, err)

	// B5 が競合するため A1 も押さえられない
	_, err = m.HoldSeats([]ID{{Row: "A", Number: 1}, {Row: "B", Number: 5}}, "BK-TEST01")
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.ErrorContains(t, err, "B5")

	a1, _ := m.Get(ID{Row: "A", Number: 1})
	assert.Equal(t, StateAvailable, a1.State)
}

func TestMap_HoldSeats_UnknownSeat(t *testing.T) {
	m := newEmptyMap(t)
	_, err := m.HoldSeats([]ID{{Row: "Z", Number: 99}}, "BK-TEST01")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestMap_BookSeats(t *testing.T) {
	m := newEmptyMap(t)
	ids := []ID{{Row: "A", Number: 1}}
	_, err := m.HoldSeats(ids, "BK-TEST01")
	require.NoError(t, err)

	require.NoError(t, m.BookSeats(ids, "BK-TEST01"))
	s, _ := m.Get(ids[0])
	assert.Equal(t, StateBooked, s.State)
}

func TestMap_BookSeats_NotHeld(t *testing.T) {
	m := newEmptyMap(t)
	err := m.BookSeats([]ID{{Row: "A", Number: 1}}, "BK-TEST01")
	assert.ErrorIs(t, err, ErrSeatNotHeld)
}

func TestMap_ReleaseSeats(t *testing.T) {
	m := newEmptyMap(t)
	ids := []ID{{Row: "A", Number: 1}, {Row: "A", Number: 2}}
	_, err := m.HoldSeats(ids, "BK-TEST01")
	require.NoError(t, err)

	m.ReleaseSeats(ids, "BK-TEST01")
	_, available := m.Counts()
	assert.Equal(t, 120, available)
}
