package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
)

// SeatMapFactory は上映回の座席マップを初回アクセス時に生成する
type SeatMapFactory func(st *showtime.Showtime) *seat.Map

// showtimeRecord は1つの上映回と座席マップを保持する。
// mu が座席マップへのアクセスを上映回単位で直列化する。
type showtimeRecord struct {
	mu       sync.Mutex
	showtime *showtime.Showtime
	seats    *seat.Map
}

// ShowtimeStore はインメモリの上映回ストア。座席マップは上映回ごとに
// 一度だけ生成・保持され、以後の読み取りで再抽選されることはない。
type ShowtimeStore struct {
	mu         sync.RWMutex
	byID       map[string]*showtimeRecord
	schedules  map[string][]*showtime.Showtime // key: movieID + "@" + date
	newSeatMap SeatMapFactory
}

// NewShowtimeStore は新しいShowtimeStoreを作成する
func NewShowtimeStore(factory SeatMapFactory) *ShowtimeStore {
	return &ShowtimeStore{
		byID:       make(map[string]*showtimeRecord),
		schedules:  make(map[string][]*showtime.Showtime),
		newSeatMap: factory,
	}
}

func scheduleKey(movieID string, date time.Time) string {
	return movieID + "@" + date.Format("2006-01-02")
}

// SaveSchedule は (映画, 日付) の上映回一覧を保存する。既に保存済みの場合は
// 保存済みの一覧をそのまま返すため、同じ上映回IDは常に同じ内容を指す。
func (s *ShowtimeStore) SaveSchedule(ctx context.Context, movieID string, date time.Time, showtimes []*showtime.Showtime) ([]*showtime.Showtime, error) {
	key := scheduleKey(movieID, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.schedules[key]; ok {
		return existing, nil
	}
	s.schedules[key] = showtimes
	for _, st := range showtimes {
		s.byID[st.ID] = &showtimeRecord{showtime: st}
	}
	return showtimes, nil
}

// GetSchedule は (映画, 日付) の上映回一覧を取得する
func (s *ShowtimeStore) GetSchedule(ctx context.Context, movieID string, date time.Time) ([]*showtime.Showtime, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	showtimes, ok := s.schedules[scheduleKey(movieID, date)]
	return showtimes, ok, nil
}

// GetByID はIDから上映回を取得する
func (s *ShowtimeStore) GetByID(ctx context.Context, id string) (*showtime.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, showtime.ErrShowtimeNotFound
	}
	return rec.showtime, nil
}

// WithSeatMap は上映回の座席マップを排他的に操作する。マップは初回アクセス時に
// 生成され、以後は同じマップが返される。同一上映回への並行アクセスは
// レコードのミューテックスで直列化される。
func (s *ShowtimeStore) WithSeatMap(ctx context.Context, id string, fn func(*seat.Map) error) error {
	s.mu.RLock()
	rec, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return showtime.ErrShowtimeNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.seats == nil {
		rec.seats = s.newSeatMap(rec.showtime)
	}
	return fn(rec.seats)
}

var _ showtime.Repository = (*ShowtimeStore)(nil)
