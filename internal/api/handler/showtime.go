package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/showtime"
)

type ShowtimeHandler struct {
	service ShowtimeServiceInterface
}

func NewShowtimeHandler(s ShowtimeServiceInterface) *ShowtimeHandler {
	return &ShowtimeHandler{service: s}
}

type ShowtimeResponse struct {
	ID        string    `json:"id" example:"st_m001_20260901_0"`
	MovieID   string    `json:"movie_id" example:"m001"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Theater   string    `json:"theater" example:"Screen 1"`
	Screen    string    `json:"screen" example:"Screen 1"`
	Format    string    `json:"format" example:"IMAX"`
	Price     string    `json:"price" example:"17.00"`
}

func toShowtimeResponse(st *showtime.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID: st.ID, MovieID: st.MovieID,
		StartTime: st.StartTime, EndTime: st.EndTime,
		Theater: st.Theater, Screen: st.Screen,
		Format: string(st.Format), Price: st.Price.StringFixed(2),
	}
}

type SeatResponse struct {
	ID    string `json:"id" example:"A1"`
	Class string `json:"class" example:"standard"`
	State string `json:"state" example:"available"`
	Price string `json:"price" example:"12.00"`
}

type RowResponse struct {
	Row   string         `json:"row" example:"A"`
	Seats []SeatResponse `json:"seats"`
}

type AvailabilityResponse struct {
	Showtime       ShowtimeResponse `json:"showtime"`
	TotalSeats     int              `json:"total_seats" example:"120"`
	AvailableSeats int              `json:"available_seats" example:"84"`
	Rows           []RowResponse    `json:"rows"`
}

func toAvailabilityResponse(av *application.Availability) AvailabilityResponse {
	resp := AvailabilityResponse{
		Showtime:       toShowtimeResponse(av.Showtime),
		TotalSeats:     av.Total,
		AvailableSeats: av.Available,
		Rows:           make([]RowResponse, 0, len(av.Rows)),
	}
	for _, row := range av.Rows {
		r := RowResponse{Row: row.Row, Seats: make([]SeatResponse, 0, len(row.Seats))}
		for _, se := range row.Seats {
			r.Seats = append(r.Seats, SeatResponse{
				ID:    se.ID,
				Class: string(se.Class),
				State: string(se.State),
				Price: se.Price.StringFixed(2),
			})
		}
		resp.Rows = append(resp.Rows, r)
	}
	return resp
}

// ListByMovie godoc
// @Summary 映画の上映回一覧を取得
// @Description 指定日の上映スケジュールを返します（初回アクセス時に生成）
// @Tags showtimes
// @Produce json
// @Param id path string true "映画ID"
// @Param date query string false "日付（YYYY-MM-DD、省略時は当日）"
// @Success 200 {array} ShowtimeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /movies/{id}/showtimes [get]
func (h *ShowtimeHandler) ListByMovie(c echo.Context) error {
	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "日付はYYYY-MM-DD形式で指定してください")
		}
		date = parsed
	}

	showtimes, err := h.service.GetShowtimes(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		resp[i] = toShowtimeResponse(st)
	}
	return c.JSON(http.StatusOK, resp)
}

// AvailabilityCountResponse は空席数のみの軽量レスポンス
type AvailabilityCountResponse struct {
	ShowtimeID string `json:"showtime_id" example:"st_m001_20260901_0"`
	Count      int    `json:"count" example:"84"`
}

// AvailabilityCount godoc
// @Summary 上映回の空席数を取得
// @Description 座席マップを返さず空席数のみを返します（キャッシュ優先）
// @Tags showtimes
// @Produce json
// @Param id path string true "上映回ID"
// @Success 200 {object} AvailabilityCountResponse
// @Failure 404 {object} map[string]string
// @Router /showtimes/{id}/availability/count [get]
func (h *ShowtimeHandler) AvailabilityCount(c echo.Context) error {
	ctx := c.Request().Context()

	st, err := h.service.GetShowtime(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	count, err := h.service.CountAvailable(ctx, st.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, AvailabilityCountResponse{ShowtimeID: st.ID, Count: count})
}

// Availability godoc
// @Summary 上映回の空席情報を取得
// @Description 座席マップのスナップショットと空席数を返します
// @Tags showtimes
// @Produce json
// @Param id path string true "上映回ID"
// @Success 200 {object} AvailabilityResponse
// @Failure 404 {object} map[string]string
// @Router /showtimes/{id}/availability [get]
func (h *ShowtimeHandler) Availability(c echo.Context) error {
	av, err := h.service.GetAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAvailabilityResponse(av))
}
