package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a reservation (pesanan) of a villa for a date range.
// StartDate and EndDate are calendar dates at midnight UTC.
type Booking struct {
	Base
	UserID     uuid.UUID     `db:"user_id"`
	VillaID    uuid.UUID     `db:"villa_id"`
	StartDate  time.Time     `db:"start_date"`
	EndDate    time.Time     `db:"end_date"`
	Guests     int           `db:"guests"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}

// Nights is the number of nights covered, at least one.
func (b *Booking) Nights() int {
	nights := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

type BookedDate struct {
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}
