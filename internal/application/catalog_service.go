package application

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/pkg/logger"
)

const defaultRecommendationLimit = 3

// MovieSearcher は外部映画情報プロバイダのインターフェース
type MovieSearcher interface {
	SearchByTitle(ctx context.Context, query string, limit int) ([]*movie.Movie, error)
}

// CatalogService は映画カタログの検索・推薦を提供する
type CatalogService struct {
	movieRepo movie.Repository
	provider  MovieSearcher

	randMu sync.Mutex
	rng    *rand.Rand
}

// NewCatalogService は新しいCatalogServiceを作成する。provider は任意で、
// nil の場合は外部検索を行わない。
func NewCatalogService(mr movie.Repository, provider MovieSearcher, rng *rand.Rand) *CatalogService {
	return &CatalogService{movieRepo: mr, provider: provider, rng: rng}
}

type SearchMoviesInput struct {
	Status string // now_showing / coming_soon / 空なら全件
	Genre  string
	Query  string
}

// SearchMovies はカタログを条件で絞り込む。Query がカタログに一致せず
// プロバイダが設定されている場合は外部検索に委譲する。
func (s *CatalogService) SearchMovies(ctx context.Context, input SearchMoviesInput) ([]*movie.Movie, error) {
	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*movie.Movie, 0, len(movies))
	for _, m := range movies {
		if input.Status != "" && m.Status != movie.Status(input.Status) {
			continue
		}
		if input.Genre != "" && !m.HasGenre(input.Genre) {
			continue
		}
		if input.Query != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(input.Query)) {
			continue
		}
		result = append(result, m)
	}

	if len(result) == 0 && input.Query != "" && s.provider != nil {
		external, err := s.provider.SearchByTitle(ctx, input.Query, defaultRecommendationLimit)
		if err != nil {
			logger.Warn("外部検索に失敗", zap.String("query", input.Query), zap.Error(err))
			return nil, err
		}
		return external, nil
	}

	return result, nil
}

// GetMovie はIDから映画を取得する
func (s *CatalogService) GetMovie(ctx context.Context, id string) (*movie.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

// Recommend は上映中の映画からジャンルが重なるものを抽出し、
// ランダムに limit 件まで返す。genres が空なら上映中の全作品が候補になる。
func (s *CatalogService) Recommend(ctx context.Context, genres []string, limit int) ([]*movie.Movie, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]*movie.Movie, 0, len(movies))
	for _, m := range movies {
		if !m.IsNowShowing() {
			continue
		}
		if len(genres) > 0 && !m.HasAnyGenre(genres) {
			continue
		}
		candidates = append(candidates, m)
	}

	s.randMu.Lock()
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	s.randMu.Unlock()

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
