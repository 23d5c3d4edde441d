package handler_test

import (
	"github.com/labstack/echo/v4"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/api"
)

// NewTestEcho はハンドラーテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}
