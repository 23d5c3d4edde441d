package handler

import (
	"context"
	"time"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
)

// CatalogServiceInterface は映画カタログサービスのインターフェース
type CatalogServiceInterface interface {
	SearchMovies(ctx context.Context, input application.SearchMoviesInput) ([]*movie.Movie, error)
	GetMovie(ctx context.Context, id string) (*movie.Movie, error)
	Recommend(ctx context.Context, genres []string, limit int) ([]*movie.Movie, error)
}

// ShowtimeServiceInterface は上映スケジュールサービスのインターフェース
type ShowtimeServiceInterface interface {
	GetShowtimes(ctx context.Context, movieID string, date time.Time) ([]*showtime.Showtime, error)
	GetShowtime(ctx context.Context, id string) (*showtime.Showtime, error)
	GetAvailability(ctx context.Context, showtimeID string) (*application.Availability, error)
	CountAvailable(ctx context.Context, showtimeID string) (int, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	ProcessPayment(ctx context.Context, input application.ProcessPaymentInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
}
