package response

import (
	"time"

	"villa-rental/internal/data/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	VillaID    string               `json:"villa_id"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Nights     int                  `json:"nights"`
	Guests     int                  `json:"guests"`
	TotalPrice float64              `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type BookedDateResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		UserID:     booking.UserID.String(),
		VillaID:    booking.VillaID.String(),
		StartDate:  booking.StartDate.Format(dateLayout),
		EndDate:    booking.EndDate.Format(dateLayout),
		Nights:     booking.Nights(),
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

func BookedDatesToResponse(dates []entity.BookedDate) []BookedDateResponse {
	out := make([]BookedDateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, BookedDateResponse{
			StartDate: d.StartDate.Format(dateLayout),
			EndDate:   d.EndDate.Format(dateLayout),
		})
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
