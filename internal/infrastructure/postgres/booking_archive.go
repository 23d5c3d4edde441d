package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mouadzeghraoui/cinema-booking-api/internal/domain/booking"
)

// BookingArchive は終端状態に達した予約を監査用に書き出すストア。
// インメモリストアが正であり、ここへの書き込みはベストエフォート。
type BookingArchive struct {
	db *sqlx.DB
}

// NewBookingArchive は新しいBookingArchiveを作成する
func NewBookingArchive(db *sqlx.DB) *BookingArchive {
	return &BookingArchive{db: db}
}

// Save は予約をアーカイブに書き出す。同じIDは最新の状態で上書きされる。
func (a *BookingArchive) Save(ctx context.Context, b *booking.Booking) error {
	seats := make([]string, len(b.Seats))
	for i, s := range b.Seats {
		seats[i] = s.ID().String()
	}

	var txnID string
	if b.Payment != nil {
		txnID = b.Payment.TransactionID
	}

	query := `INSERT INTO booking_archive
		(id, showtime_id, status, seats, customer_name, customer_email, subtotal, fee, total, confirmation_code, transaction_id, created_at, expires_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, confirmation_code = EXCLUDED.confirmation_code, transaction_id = EXCLUDED.transaction_id, settled_at = EXCLUDED.settled_at`
	if _, err := a.db.ExecContext(ctx, query,
		b.ID, b.ShowtimeID, string(b.Status), strings.Join(seats, ","),
		b.Customer.Name, b.Customer.Email,
		b.Subtotal.StringFixed(2), b.Fee.StringFixed(2), b.Total.StringFixed(2),
		b.ConfirmationCode, txnID, b.CreatedAt, b.ExpiresAt, b.UpdatedAt,
	); err != nil {
		return fmt.Errorf("予約アーカイブ書き込みに失敗: %w", err)
	}
	return nil
}
