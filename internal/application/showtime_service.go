package application

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	redisinfra "github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/redis"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/logger"
)

const availabilityCacheTTL = 30 * time.Second

// ShowtimeService は上映スケジュールと空席情報を提供する
type ShowtimeService struct {
	movieRepo    movie.Repository
	showtimeRepo showtime.Repository
	cache        *redisinfra.AvailabilityCache

	randMu sync.Mutex
	rng    *rand.Rand
}

// NewShowtimeService は新しいShowtimeServiceを作成する。cache は任意。
func NewShowtimeService(mr movie.Repository, sr showtime.Repository, cache *redisinfra.AvailabilityCache, rng *rand.Rand) *ShowtimeService {
	return &ShowtimeService{movieRepo: mr, showtimeRepo: sr, cache: cache, rng: rng}
}

// GetShowtimes は (映画, 日付) の上映回一覧を返す。初回アクセス時に生成して
// 保存し、以後は保存済みの一覧を返す。公開前の映画は空の一覧になる。
func (s *ShowtimeService) GetShowtimes(ctx context.Context, movieID string, date time.Time) ([]*showtime.Showtime, error) {
	m, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if !m.IsNowShowing() {
		return []*showtime.Showtime{}, nil
	}

	existing, found, err := s.showtimeRepo.GetSchedule(ctx, movieID, date)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	s.randMu.Lock()
	generated := showtime.Generate(movieID, date, m.DurationMin, s.rng)
	s.randMu.Unlock()

	// 同時アクセスで二重生成された場合も保存済みの方が返る
	return s.showtimeRepo.SaveSchedule(ctx, movieID, date, generated)
}

// GetShowtime はIDから上映回を取得する
func (s *ShowtimeService) GetShowtime(ctx context.Context, id string) (*showtime.Showtime, error) {
	return s.showtimeRepo.GetByID(ctx, id)
}

// SeatInfo は座席マップのスナップショット1席分
type SeatInfo struct {
	ID    string
	Class seat.Class
	State seat.State
	Price decimal.Decimal
}

// RowInfo は座席マップのスナップショット1列分
type RowInfo struct {
	Row   string
	Seats []SeatInfo
}

// Availability は上映回の空席情報
type Availability struct {
	Showtime  *showtime.Showtime
	Total     int
	Available int
	Rows      []RowInfo
}

// GetAvailability は上映回の座席マップのスナップショットを返す。
// 空席数はキャッシュにも反映する。
func (s *ShowtimeService) GetAvailability(ctx context.Context, showtimeID string) (*Availability, error) {
	st, err := s.showtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	av := &Availability{Showtime: st}
	err = s.showtimeRepo.WithSeatMap(ctx, showtimeID, func(m *seat.Map) error {
		av.Total, av.Available = m.Counts()
		for _, row := range m.Rows() {
			info := RowInfo{Row: row.Label, Seats: make([]SeatInfo, 0, len(row.Seats))}
			for _, se := range row.Seats {
				info.Seats = append(info.Seats, SeatInfo{
					ID:    se.ID().String(),
					Class: se.Class,
					State: se.State,
					Price: se.Price,
				})
			}
			av.Rows = append(av.Rows, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, showtimeID, av.Available, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}

	return av, nil
}

// CountAvailable は上映回の空席数を返す。キャッシュ優先で、ミス時は
// 座席マップから数えてキャッシュに保存する。
func (s *ShowtimeService) CountAvailable(ctx context.Context, showtimeID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, showtimeID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("showtime_id", showtimeID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	var available int
	err := s.showtimeRepo.WithSeatMap(ctx, showtimeID, func(m *seat.Map) error {
		_, available = m.Counts()
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, showtimeID, available, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}

	return available, nil
}
