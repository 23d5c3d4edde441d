package api

import (
	"github.com/labstack/echo/v4"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/api/handler"
)

// Handlers はルーティングに必要なハンドラー一式
type Handlers struct {
	Health   *handler.HealthHandler
	Movie    *handler.MovieHandler
	Showtime *handler.ShowtimeHandler
	Booking  *handler.BookingHandler
}

// RegisterRoutes はAPIルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Check)

	v1 := e.Group("/api/v1")

	v1.GET("/health", h.Health.Check)

	v1.GET("/movies", h.Movie.List)
	v1.GET("/movies/:id", h.Movie.GetByID)
	v1.GET("/movies/:id/showtimes", h.Showtime.ListByMovie)
	v1.GET("/recommendations", h.Movie.Recommend)

	v1.GET("/showtimes/:id/availability", h.Showtime.Availability)
	v1.GET("/showtimes/:id/availability/count", h.Showtime.AvailabilityCount)

	v1.POST("/bookings", h.Booking.Create)
	v1.POST("/bookings/:id/payment", h.Booking.Pay)
	v1.GET("/bookings/:id", h.Booking.GetByID)
}
