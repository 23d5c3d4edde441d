package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)

	assert.Len(t, cfg.Booking.Rows, 10)
	assert.Equal(t, 12, cfg.Booking.SeatsPerRow)
	assert.Equal(t, []string{"E", "F", "G"}, cfg.Booking.PremiumRows)
	assert.Equal(t, []string{"H", "I", "J"}, cfg.Booking.VIPRows)
	assert.InDelta(t, 0.30, cfg.Booking.OccupancyRatio, 0.001)
	assert.Equal(t, "1.50", cfg.Booking.BookingFee.StringFixed(2))
	assert.Equal(t, 10*time.Minute, cfg.Booking.HoldTTL)
	assert.InDelta(t, 0.90, cfg.Booking.PaymentSuccessRate, 0.001)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEAT_ROWS", "A,B,C")
	t.Setenv("SEATS_PER_ROW", "8")
	t.Setenv("BOOKING_FEE", "2.00")
	t.Setenv("BOOKING_HOLD_TTL", "15m")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.95")
	t.Setenv("DB_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Booking.Rows)
	assert.Equal(t, 8, cfg.Booking.SeatsPerRow)
	assert.Equal(t, "2.00", cfg.Booking.BookingFee.StringFixed(2))
	assert.Equal(t, 15*time.Minute, cfg.Booking.HoldTTL)
	assert.InDelta(t, 0.95, cfg.Booking.PaymentSuccessRate, 0.001)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("SEATS_PER_ROW", "not-a-number")
	t.Setenv("BOOKING_HOLD_TTL", "soon")
	t.Setenv("BOOKING_FEE", "abc")

	cfg := Load()

	assert.Equal(t, 12, cfg.Booking.SeatsPerRow)
	assert.Equal(t, 10*time.Minute, cfg.Booking.HoldTTL)
	assert.Equal(t, "1.50", cfg.Booking.BookingFee.StringFixed(2))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5433", User: "app", Password: "secret",
		DBName: "cinema", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=cinema sslmode=disable",
		c.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: "6380"}
	assert.Equal(t, "cache:6380", c.Addr())
}
