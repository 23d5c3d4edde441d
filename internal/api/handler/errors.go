package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/movie"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/infrastructure/moviedata"
)

// toHTTPError はドメインエラーをHTTPステータスに対応付ける。
// リソース不在は404、競合・状態不整合・期限切れは409、決済拒否は402、
// 外部プロバイダ障害は503、それ以外の既知エラーは400。
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, movie.ErrMovieNotFound),
		errors.Is(err, showtime.ErrShowtimeNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, seat.ErrSeatUnavailable),
		errors.Is(err, booking.ErrInvalidState),
		errors.Is(err, booking.ErrBookingExpired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, booking.ErrPaymentDeclined):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())

	case errors.Is(err, moviedata.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())

	case errors.Is(err, seat.ErrSeatNotFound),
		errors.Is(err, seat.ErrInvalidSeatID),
		errors.Is(err, booking.ErrNoSeats),
		errors.Is(err, booking.ErrTooManySeats),
		errors.Is(err, booking.ErrAmountMismatch),
		errors.Is(err, booking.ErrShowtimeIDRequired),
		errors.Is(err, booking.ErrCustomerNameRequired),
		errors.Is(err, booking.ErrCustomerEmailRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
