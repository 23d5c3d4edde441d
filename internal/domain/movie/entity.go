package movie

// Status は映画の上映状態を表す
type Status string

const (
	StatusNowShowing Status = "now_showing"
	StatusComingSoon Status = "coming_soon"
)

// Movie は映画エンティティを表す。カタログ起動時に生成される参照データであり、
// 以後変更されない。
type Movie struct {
	ID          string
	Title       string
	Genres      []string
	Rating      string // 年齢レーティング（G, PG, PG-13, R）
	DurationMin int
	ReleaseDate string // YYYY-MM-DD
	Status      Status
	Synopsis    string
	Director    string
	Cast        []string
	IMDbRating  float64
	PosterURL   string
	TrailerURL  string
}

// IsNowShowing は上映中かを返す
func (m *Movie) IsNowShowing() bool {
	return m.Status == StatusNowShowing
}

// HasGenre は指定ジャンルを含むかを返す
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// HasAnyGenre はいずれかのジャンルを含むかを返す
func (m *Movie) HasAnyGenre(genres []string) bool {
	for _, g := range genres {
		if m.HasGenre(g) {
			return true
		}
	}
	return false
}

// Validate は映画の検証を行う
func (m *Movie) Validate() error {
	if m.ID == "" {
		return ErrMovieIDRequired
	}
	if m.Title == "" {
		return ErrMovieTitleRequired
	}
	if m.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
