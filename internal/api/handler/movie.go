package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
)

type MovieHandler struct {
	service CatalogServiceInterface
}

func NewMovieHandler(s CatalogServiceInterface) *MovieHandler {
	return &MovieHandler{service: s}
}

type MovieResponse struct {
	ID          string   `json:"id" example:"m001"`
	Title       string   `json:"title" example:"Inception"`
	Genres      []string `json:"genres" example:"Sci-Fi,Thriller"`
	Rating      string   `json:"rating" example:"PG-13"`
	DurationMin int      `json:"duration_min" example:"148"`
	ReleaseDate string   `json:"release_date" example:"2010-07-16"`
	Status      string   `json:"status" example:"now_showing"`
	Synopsis    string   `json:"synopsis,omitempty"`
	Director    string   `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	IMDbRating  float64  `json:"imdb_rating,omitempty" example:"8.8"`
	PosterURL   string   `json:"poster_url,omitempty"`
	TrailerURL  string   `json:"trailer_url,omitempty"`
}

func toMovieResponse(m *movie.Movie) MovieResponse {
	return MovieResponse{
		ID: m.ID, Title: m.Title, Genres: m.Genres, Rating: m.Rating,
		DurationMin: m.DurationMin, ReleaseDate: m.ReleaseDate,
		Status: string(m.Status), Synopsis: m.Synopsis, Director: m.Director,
		Cast: m.Cast, IMDbRating: m.IMDbRating,
		PosterURL: m.PosterURL, TrailerURL: m.TrailerURL,
	}
}

func toMovieResponses(movies []*movie.Movie) []MovieResponse {
	resp := make([]MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	return resp
}

// List godoc
// @Summary 映画一覧を取得
// @Description 上映状態・ジャンル・タイトルで絞り込んだ映画一覧を返します
// @Tags movies
// @Produce json
// @Param status query string false "上映状態" Enums(now_showing, coming_soon)
// @Param genre query string false "ジャンル"
// @Param q query string false "タイトル検索"
// @Success 200 {array} MovieResponse
// @Failure 503 {object} map[string]string "外部プロバイダ障害"
// @Router /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.SearchMovies(c.Request().Context(), application.SearchMoviesInput{
		Status: c.QueryParam("status"),
		Genre:  c.QueryParam("genre"),
		Query:  c.QueryParam("q"),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMovieResponses(movies))
}

// GetByID godoc
// @Summary 映画を取得
// @Description 指定IDの映画を取得します
// @Tags movies
// @Produce json
// @Param id path string true "映画ID"
// @Success 200 {object} MovieResponse
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [get]
func (h *MovieHandler) GetByID(c echo.Context) error {
	m, err := h.service.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMovieResponse(m))
}

// Recommend godoc
// @Summary おすすめ映画を取得
// @Description 指定ジャンルに合う上映中の映画をランダムに返します
// @Tags movies
// @Produce json
// @Param genres query string false "ジャンル（カンマ区切り）"
// @Param limit query int false "取得件数" default(3)
// @Success 200 {array} MovieResponse
// @Router /recommendations [get]
func (h *MovieHandler) Recommend(c echo.Context) error {
	var genres []string
	if raw := c.QueryParam("genres"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(g); trimmed != "" {
				genres = append(genres, trimmed)
			}
		}
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	movies, err := h.service.Recommend(c.Request().Context(), genres, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMovieResponses(movies))
}
