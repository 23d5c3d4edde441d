// Package moviedata は外部映画情報プロバイダ（TMDb互換API）のクライアント。
// カタログ検索の補完にのみ使われ、予約コアからは参照されない。
package moviedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/config"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
)

var (
	// ErrProviderUnavailable は外部プロバイダ障害を表す。NotFound とは
	// 区別され、呼び出し側でリトライ可能。
	ErrProviderUnavailable = errors.New("映画情報プロバイダが利用できません")
)

// Client はTMDb互換APIのHTTPクライアント
type Client struct {
	baseURL    string
	apiKey     string
	region     string
	imageBase  string
	httpClient *http.Client
}

// NewClient は新しいClientを作成する
func NewClient(cfg *config.ProviderConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		region:    cfg.Region,
		imageBase: "https://image.tmdb.org/t/p/w500",
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type searchResponse struct {
	Results []struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		Overview    string  `json:"overview"`
		VoteAverage float64 `json:"vote_average"`
		PosterPath  string  `json:"poster_path"`
	} `json:"results"`
}

// SearchByTitle はタイトルで映画を検索する。プロバイダ障害は
// ErrProviderUnavailable として返す。
func (c *Client) SearchByTitle(ctx context.Context, query string, limit int) ([]*movie.Movie, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("region", c.region)

	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if limit <= 0 || limit > len(body.Results) {
		limit = len(body.Results)
	}
	movies := make([]*movie.Movie, 0, limit)
	for _, r := range body.Results[:limit] {
		m := &movie.Movie{
			ID:          "tmdb-" + strconv.Itoa(r.ID),
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Synopsis:    r.Overview,
			IMDbRating:  r.VoteAverage,
			Status:      movie.StatusNowShowing,
		}
		if r.PosterPath != "" {
			m.PosterURL = c.imageBase + r.PosterPath
		}
		movies = append(movies, m)
	}
	return movies, nil
}
