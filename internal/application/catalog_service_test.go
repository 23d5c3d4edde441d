package application

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/memory"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/moviedata"
)

// MockMovieSearcher はMovieSearcherのモック
type MockMovieSearcher struct {
	mock.Mock
}

func (m *MockMovieSearcher) SearchByTitle(ctx context.Context, query string, limit int) ([]*movie.Movie, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movie.Movie), args.Error(1)
}

func newCatalogService(provider MovieSearcher) *CatalogService {
	return NewCatalogService(memory.NewCatalogStore(memory.SeedMovies()), provider,
		rand.New(rand.NewSource(1)))
}

func TestCatalogService_SearchMovies_All(t *testing.T) {
	svc := newCatalogService(nil)
	movies, err := svc.SearchMovies(context.Background(), SearchMoviesInput{})
	require.NoError(t, err)
	assert.Len(t, movies, 5)
}

func TestCatalogService_SearchMovies_ByStatus(t *testing.T) {
	svc := newCatalogService(nil)

	nowShowing, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Status: "now_showing"})
	require.NoError(t, err)
	assert.Len(t, nowShowing, 3)

	comingSoon, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Status: "coming_soon"})
	require.NoError(t, err)
	assert.Len(t, comingSoon, 2)
}

func TestCatalogService_SearchMovies_ByGenre(t *testing.T) {
	svc := newCatalogService(nil)
	movies, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Genre: "Sci-Fi"})
	require.NoError(t, err)
	require.NotEmpty(t, movies)
	for _, m := range movies {
		assert.True(t, m.HasGenre("Sci-Fi"))
	}
}

func TestCatalogService_SearchMovies_ByQuery(t *testing.T) {
	svc := newCatalogService(nil)
	all, err := svc.SearchMovies(context.Background(), SearchMoviesInput{})
	require.NoError(t, err)

	// タイトルの一部（大文字小文字を無視）で一致する
	target := all[0]
	movies, err := svc.SearchMovies(context.Background(), SearchMoviesInput{
		Query: target.Title[:3],
	})
	require.NoError(t, err)
	require.NotEmpty(t, movies)
	assert.Equal(t, target.ID, movies[0].ID)
}

func TestCatalogService_SearchMovies_ProviderFallback(t *testing.T) {
	provider := new(MockMovieSearcher)
	external := []*movie.Movie{{ID: "tmdb-603", Title: "The Matrix", Status: movie.StatusNowShowing}}
	provider.On("SearchByTitle", mock.Anything, "matrix", mock.Anything).Return(external, nil)

	svc := newCatalogService(provider)
	movies, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Query: "matrix"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "tmdb-603", movies[0].ID)
	provider.AssertExpectations(t)
}

func TestCatalogService_SearchMovies_ProviderUnavailable(t *testing.T) {
	provider := new(MockMovieSearcher)
	provider.On("SearchByTitle", mock.Anything, "matrix", mock.Anything).
		Return(nil, moviedata.ErrProviderUnavailable)

	svc := newCatalogService(provider)
	_, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Query: "matrix"})
	assert.True(t, errors.Is(err, moviedata.ErrProviderUnavailable))
}

func TestCatalogService_SearchMovies_NoProviderNoMatch(t *testing.T) {
	svc := newCatalogService(nil)
	movies, err := svc.SearchMovies(context.Background(), SearchMoviesInput{Query: "no-such-movie"})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestCatalogService_GetMovie(t *testing.T) {
	svc := newCatalogService(nil)

	m, err := svc.GetMovie(context.Background(), "m001")
	require.NoError(t, err)
	assert.Equal(t, "m001", m.ID)

	_, err = svc.GetMovie(context.Background(), "m999")
	assert.ErrorIs(t, err, movie.ErrMovieNotFound)
}

func TestCatalogService_Recommend(t *testing.T) {
	svc := newCatalogService(nil)

	movies, err := svc.Recommend(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(movies), 3)
	for _, m := range movies {
		assert.True(t, m.IsNowShowing(), "公開前の映画は推薦しない")
	}
}

func TestCatalogService_Recommend_ByGenre(t *testing.T) {
	svc := newCatalogService(nil)

	movies, err := svc.Recommend(context.Background(), []string{"Sci-Fi"}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, movies)
	for _, m := range movies {
		assert.True(t, m.HasGenre("Sci-Fi"))
	}
}

func TestCatalogService_Recommend_NoMatch(t *testing.T) {
	svc := newCatalogService(nil)
	movies, err := svc.Recommend(context.Background(), []string{"Documentary"}, 3)
	require.NoError(t, err)
	assert.Empty(t, movies)
}
