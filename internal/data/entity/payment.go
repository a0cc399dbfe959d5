package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment (pembayaran) belongs to exactly one booking. Code is unique.
type Payment struct {
	Base
	BookingID  uuid.UUID `db:"booking_id"`
	PayerName  string    `db:"payer_name"`
	PayerEmail string    `db:"payer_email"`
	Code       string    `db:"code"`
	Status     string    `db:"status"`
	PaidAt     time.Time `db:"paid_at"`
	Method     string    `db:"method"`
	Bank       string    `db:"bank"`
	Amount     float64   `db:"amount"`
	ExpiryTime time.Time `db:"expiry_time"`
	VANumber   *string   `db:"va_number"`
	PDFURL     *string   `db:"pdf_url"`
}

// MonthlyTotal is one calendar-month bucket of payments.
type MonthlyTotal struct {
	Month int     `db:"month"`
	Total float64 `db:"total"`
	Count int64   `db:"count"`
}
