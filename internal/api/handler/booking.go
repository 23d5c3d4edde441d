package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/application"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/seat"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required" example:"Jane Doe"`
	Email string `json:"email" validate:"required,email" example:"jane@example.com"`
	Phone string `json:"phone" example:"+33612345678"`
}

type CreateBookingRequest struct {
	ShowtimeID string          `json:"showtime_id" validate:"required" example:"st_m001_20260901_0"`
	Seats      []string        `json:"seats" validate:"required,min=1,max=10" example:"A1,A2"`
	Customer   CustomerRequest `json:"customer" validate:"required"`
}

type ProcessPaymentRequest struct {
	Method     string  `json:"method" validate:"required" example:"credit_card"`
	Amount     float64 `json:"amount" validate:"required,gt=0" example:"28.50"`
	CardNumber string  `json:"card_number" example:"4242424242424242"`
}

type BookingSeatResponse struct {
	Seat  string `json:"seat" example:"A1"`
	Class string `json:"class" example:"standard"`
	Price string `json:"price" example:"12.00"`
}

type PaymentResponse struct {
	Method        string    `json:"method" example:"credit_card"`
	TransactionID string    `json:"transaction_id" example:"TXN-1A2B3C4D5E"`
	Card          string    `json:"card" example:"****4242"`
	Amount        string    `json:"amount" example:"28.50"`
	ProcessedAt   time.Time `json:"processed_at"`
}

type TicketResponse struct {
	ID   string `json:"id" example:"TKT-1A2B3C4D"`
	Seat string `json:"seat" example:"A1"`
}

type BookingResponse struct {
	ID               string                `json:"id" example:"BK-1A2B3C4D"`
	ShowtimeID       string                `json:"showtime_id" example:"st_m001_20260901_0"`
	Seats            []BookingSeatResponse `json:"seats"`
	Customer         CustomerRequest       `json:"customer"`
	Subtotal         string                `json:"subtotal" example:"27.00"`
	Fee              string                `json:"fee" example:"1.50"`
	Total            string                `json:"total" example:"28.50"`
	Status           string                `json:"status" example:"pending_payment"`
	ConfirmationCode string                `json:"confirmation_code,omitempty" example:"CNF-1A2B3C"`
	Payment          *PaymentResponse      `json:"payment,omitempty"`
	Tickets          []TicketResponse      `json:"tickets,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	ExpiresAt        time.Time             `json:"expires_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID,
		ShowtimeID: b.ShowtimeID,
		Seats:      make([]BookingSeatResponse, len(b.Seats)),
		Customer: CustomerRequest{
			Name: b.Customer.Name, Email: b.Customer.Email, Phone: b.Customer.Phone,
		},
		Subtotal:         b.Subtotal.StringFixed(2),
		Fee:              b.Fee.StringFixed(2),
		Total:            b.Total.StringFixed(2),
		Status:           string(b.Status),
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt,
		ExpiresAt:        b.ExpiresAt,
	}
	for i, s := range b.Seats {
		resp.Seats[i] = BookingSeatResponse{
			Seat:  s.ID().String(),
			Class: string(s.Class),
			Price: s.Price.StringFixed(2),
		}
	}
	if b.Payment != nil {
		resp.Payment = &PaymentResponse{
			Method:        b.Payment.Method,
			TransactionID: b.Payment.TransactionID,
			Card:          "****" + b.Payment.CardLastFour,
			Amount:        b.Payment.Amount.StringFixed(2),
			ProcessedAt:   b.Payment.ProcessedAt,
		}
	}
	for _, t := range b.Tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{ID: t.ID, Seat: t.Seat})
	}
	return resp
}

// Create godoc
// @Summary 予約を作成
// @Description 座席を仮押さえして予約を作成します（期限内に決済が必要）
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "座席が既に押さえられている"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seatIDs := make([]seat.ID, len(req.Seats))
	for i, raw := range req.Seats {
		id, err := seat.ParseID(raw)
		if err != nil {
			return toHTTPError(err)
		}
		seatIDs[i] = id
	}

	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    seatIDs,
		Customer: booking.Customer{
			Name: req.Customer.Name, Email: req.Customer.Email, Phone: req.Customer.Phone,
		},
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Pay godoc
// @Summary 予約の決済を処理
// @Description 仮押さえ中の予約の決済を行い、成功時はチケットを発行します
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "予約ID"
// @Param request body ProcessPaymentRequest true "決済情報"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string "決済拒否"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "期限切れまたは処理済み"
// @Router /bookings/{id}/payment [post]
func (h *BookingHandler) Pay(c echo.Context) error {
	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.service.ProcessPayment(c.Request().Context(), application.ProcessPaymentInput{
		BookingID:  c.Param("id"),
		Method:     req.Method,
		Amount:     decimal.NewFromFloat(req.Amount),
		CardNumber: req.CardNumber,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約の現在の状態を取得します
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}
