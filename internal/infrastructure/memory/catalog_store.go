package memory

import (
	"context"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
)

// CatalogStore はインメモリの映画カタログ。プロセス起動時に投入される
// 参照データで、以後変更されないため排他制御は不要。
type CatalogStore struct {
	movies []*movie.Movie
	byID   map[string]*movie.Movie
}

// NewCatalogStore は映画一覧からカタログを作成する。List は登録順を維持する。
func NewCatalogStore(movies []*movie.Movie) *CatalogStore {
	byID := make(map[string]*movie.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	return &CatalogStore{movies: movies, byID: byID}
}

// List は全映画を登録順で返す
func (s *CatalogStore) List(ctx context.Context) ([]*movie.Movie, error) {
	result := make([]*movie.Movie, len(s.movies))
	copy(result, s.movies)
	return result, nil
}

// GetByID はIDから映画を取得する
func (s *CatalogStore) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, movie.ErrMovieNotFound
	}
	return m, nil
}

var _ movie.Repository = (*CatalogStore)(nil)
