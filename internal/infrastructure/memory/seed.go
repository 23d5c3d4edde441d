package memory

import "github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"

// SeedMovies は起動時に投入する映画カタログの初期データを返す
func SeedMovies() []*movie.Movie {
	return []*movie.Movie{
		{
			ID:          "m001",
			Title:       "The Quantum Paradox",
			Genres:      []string{"Sci-Fi", "Thriller"},
			Rating:      "PG-13",
			DurationMin: 148,
			ReleaseDate: "2024-01-15",
			Status:      movie.StatusNowShowing,
			Synopsis:    "A physicist discovers a way to manipulate quantum reality, but each change has unexpected consequences.",
			Director:    "Christopher Nolan",
			Cast:        []string{"Emma Stone", "Oscar Isaac", "Tilda Swinton"},
			IMDbRating:  8.2,
			PosterURL:   "https://example.com/posters/quantum-paradox.jpg",
			TrailerURL:  "https://example.com/trailers/quantum-paradox",
		},
		{
			ID:          "m002",
			Title:       "Guardians of Tomorrow",
			Genres:      []string{"Action", "Adventure", "Sci-Fi"},
			Rating:      "PG-13",
			DurationMin: 135,
			ReleaseDate: "2024-02-01",
			Status:      movie.StatusNowShowing,
			Synopsis:    "A team of unlikely heroes must save Earth from an interdimensional threat.",
			Director:    "James Gunn",
			Cast:        []string{"Chris Pratt", "Zoe Saldana", "Dave Bautista"},
			IMDbRating:  7.9,
			PosterURL:   "https://example.com/posters/guardians-tomorrow.jpg",
			TrailerURL:  "https://example.com/trailers/guardians-tomorrow",
		},
		{
			ID:          "m003",
			Title:       "Love in Paris",
			Genres:      []string{"Romance", "Drama"},
			Rating:      "PG",
			DurationMin: 112,
			ReleaseDate: "2024-02-14",
			Status:      movie.StatusNowShowing,
			Synopsis:    "Two strangers meet in Paris and discover that love can transcend time and space.",
			Director:    "Nancy Meyers",
			Cast:        []string{"Ryan Gosling", "Emma Watson"},
			IMDbRating:  7.5,
			PosterURL:   "https://example.com/posters/love-paris.jpg",
			TrailerURL:  "https://example.com/trailers/love-paris",
		},
		{
			ID:          "m004",
			Title:       "The Last Detective",
			Genres:      []string{"Mystery", "Thriller"},
			Rating:      "R",
			DurationMin: 128,
			ReleaseDate: "2024-03-01",
			Status:      movie.StatusComingSoon,
			Synopsis:    "A retired detective is pulled back for one last case that threatens everything he holds dear.",
			Director:    "David Fincher",
			Cast:        []string{"Daniel Craig", "Rooney Mara", "Christopher Plummer"},
			IMDbRating:  0.0,
			PosterURL:   "https://example.com/posters/last-detective.jpg",
			TrailerURL:  "https://example.com/trailers/last-detective",
		},
		{
			ID:          "m005",
			Title:       "Animated Dreams",
			Genres:      []string{"Animation", "Family", "Adventure"},
			Rating:      "G",
			DurationMin: 95,
			ReleaseDate: "2024-03-15",
			Status:      movie.StatusComingSoon,
			Synopsis:    "A young artist's drawings come to life and embark on a magical adventure.",
			Director:    "Pete Docter",
			Cast:        []string{"Tom Hanks", "Amy Poehler", "Bill Hader"},
			IMDbRating:  0.0,
			PosterURL:   "https://example.com/posters/animated-dreams.jpg",
			TrailerURL:  "https://example.com/trailers/animated-dreams",
		},
	}
}
