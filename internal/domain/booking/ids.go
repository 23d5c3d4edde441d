package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// NewBookingID は予約ID（例: BK-3F2A1B9C）を生成する
func NewBookingID() string {
	u := uuid.New()
	return fmt.Sprintf("BK-%X", u[:4])
}

// NewConfirmationCode は確認コード（例: CNF-A1B2C3）を生成する
func NewConfirmationCode() string {
	u := uuid.New()
	return fmt.Sprintf("CNF-%X", u[:3])
}

// NewTransactionID は決済トランザクションIDを生成する
func NewTransactionID() string {
	u := uuid.New()
	return fmt.Sprintf("TXN-%X", u[:5])
}

// NewTicketID はチケットIDを生成する
func NewTicketID() string {
	u := uuid.New()
	return fmt.Sprintf("TKT-%X", u[:4])
}
